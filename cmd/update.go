package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskpad/taskpad/engine"
	"github.com/taskpad/taskpad/models"
	"github.com/taskpad/taskpad/types"
)

var (
	updateName        string
	updateDescription string
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update [task_id]",
	Aliases: []string{"edit"},
	Short:   "Edit a task's name and description",
	Long: `Edit the name and description of a task. If no ID is given, an
interactive list is shown. Missing --name/--desc flags are prompted for,
prefilled with the current values. Completion state and timestamps other
than the update time are left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateName, "name", "n", "", "new task name")
	updateCmd.Flags().StringVarP(&updateDescription, "desc", "d", "", "new task description")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	sess, st, err := OpenSession()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer func() { _ = st.Close() }()

	var task models.Task
	if len(args) > 0 {
		var ok bool
		task, ok = findTask(sess.Tasks(), args[0])
		if !ok {
			return fmt.Errorf("no task with ID '%s'", args[0])
		}
	} else {
		task, err = selectTaskInteractive(sess.Tasks(), "Select task to edit")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			if err == ErrNoTasksFound {
				fmt.Println("No tasks available to edit.")
				return nil
			}
			return err
		}
	}

	name := updateName
	description := updateDescription
	if !cmd.Flags().Changed("name") {
		name, err = promptWithDefault("Name", task.Name)
	}
	if err == nil && !cmd.Flags().Changed("desc") {
		description, err = promptWithDefault("Description", task.Description)
	}
	if err != nil {
		if err == promptui.ErrInterrupt {
			fmt.Println("Operation cancelled.")
			return nil
		}
		return err
	}

	_, err = sess.Dispatch(engine.Update{ID: task.ID, Name: name, Description: description})
	if err != nil {
		var vErr *types.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("%s is required", vErr.Field)
		}
		return err
	}
	if saveErr := sess.LastSaveErr(); saveErr != nil {
		LogError("save failed, change kept in memory for this session", saveErr)
	}

	fmt.Printf("✓ Updated task %s\n", task.ID)
	return nil
}

func promptWithDefault(label, current string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: current,
	}
	return prompt.Run()
}
