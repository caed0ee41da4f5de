package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskpad/taskpad/engine"
	"github.com/taskpad/taskpad/models"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [task_id]",
	Aliases: []string{"toggle", "d"},
	Short:   "Toggle a task's completion state",
	Long: `Flip a task between done and not done. If task_id is provided, that
task is toggled directly; otherwise an interactive list is shown.

Examples:
  # Interactive mode
  taskpad done

  # Toggle a specific task
  taskpad done abc123`,
	Args: cobra.MaximumNArgs(1),
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
			task, err = selectTaskInteractive(sess.Tasks(), "Select task to toggle")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No tasks available to toggle.")
					return
				}
				HandleFatalError("Error: Could not select a task.", err)
			}
		}

		tasks, err := sess.Dispatch(engine.Toggle{ID: task.ID})
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: Failed to toggle task '%s'.", task.Name), err)
		}
		if saveErr := sess.LastSaveErr(); saveErr != nil {
			LogError("save failed, change kept in memory for this session", saveErr)
		}

		toggled, _ := findTask(tasks, task.ID)
		if toggled.Completed {
			fmt.Printf("🎉 Task '%s' marked as done.\n", toggled.Name)
		} else {
			fmt.Printf("Task '%s' marked as not done.\n", toggled.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
