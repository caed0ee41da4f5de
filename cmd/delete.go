package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskpad/taskpad/engine"
	"github.com/taskpad/taskpad/models"
)

var deleteForce bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID. If no ID is provided, an interactive list is shown. A confirmation prompt is displayed before deletion unless --force is used.`,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sess, st, err := OpenSession()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = st.Close() }()

		var task models.Task
		if len(args) > 0 {
			var ok bool
			task, ok = findTask(sess.Tasks(), args[0])
			if !ok {
				fmt.Printf("No task with ID '%s'.\n", args[0])
				return
			}
		} else {
			task, err = selectTaskInteractive(sess.Tasks(), "Select task to delete")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Deletion cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No tasks available to delete.")
					return
				}
				fmt.Fprintf(os.Stderr, "Task selection failed: %v\n", err)
				os.Exit(1)
			}
		}

		if !deleteForce {
			confirmPrompt := promptui.Prompt{
				Label:     fmt.Sprintf("Are you sure you want to delete task '%s' (ID: %s)?", task.Name, task.ID),
				IsConfirm: true,
			}
			if _, err := confirmPrompt.Run(); err != nil {
				// Handles both 'no' (promptui.ErrAbort) and actual errors.
				if err == promptui.ErrAbort || err == promptui.ErrInterrupt {
					fmt.Println("Deletion cancelled.")
					return
				}
				fmt.Fprintf(os.Stderr, "Confirmation prompt failed: %v\n", err)
				os.Exit(1)
			}
		}

		if _, err := sess.Dispatch(engine.Delete{ID: task.ID}); err != nil {
			HandleFatalError(fmt.Sprintf("Error: Failed to delete task '%s'.", task.Name), err)
		}
		if saveErr := sess.LastSaveErr(); saveErr != nil {
			LogError("save failed, deletion kept in memory for this session", saveErr)
		}

		fmt.Printf("Task '%s' (ID: %s) deleted.\n", task.Name, task.ID)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}
