package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskpad/taskpad/engine"
	"github.com/taskpad/taskpad/types"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name> [description...]",
	Short: "Add a new task",
	Long: `Add a task to your list. The first argument is the task name; any
remaining arguments become the description. If no description is given, you
are prompted for one.

Examples:
  taskpad add "Buy milk" "2%, 1 gallon"
  taskpad add "Call the plumber" about the kitchen sink
  taskpad add "Buy bread"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	description := strings.Join(args[1:], " ")

	if strings.TrimSpace(description) == "" {
		prompt := promptui.Prompt{
			Label: "Description",
		}
		input, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return fmt.Errorf("description prompt failed: %w", err)
		}
		description = input
	}

	sess, st, err := OpenSession()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer func() { _ = st.Close() }()

	tasks, err := sess.Dispatch(engine.Add{Name: name, Description: description})
	if err != nil {
		var vErr *types.ValidationError
		if errors.As(err, &vErr) {
			// The required-field message is the only user-facing validation
			// feedback in the tool.
			return fmt.Errorf("%s is required", vErr.Field)
		}
		return err
	}
	if saveErr := sess.LastSaveErr(); saveErr != nil {
		LogError("save failed, task kept in memory for this session", saveErr)
	}

	created := tasks[len(tasks)-1]
	fmt.Printf("✓ Added '%s' (ID: %s)\n", created.Name, created.ID)
	return nil
}
