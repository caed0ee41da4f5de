package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskpad/taskpad/engine"
	"github.com/taskpad/taskpad/view"
)

var clearForce bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all completed tasks",
	Long: `Delete every completed task from the list. Active tasks are kept.
A confirmation prompt is shown unless --force is used.

Examples:
  taskpad clear
  taskpad clear --force`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	sess, st, err := OpenSession()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer func() { _ = st.Close() }()

	var ids []string
	for t := range view.Project(sess.Tasks(), view.FilterCompleted, "") {
		ids = append(ids, t.ID)
	}
	if len(ids) == 0 {
		fmt.Println("No completed tasks to clear.")
		return nil
	}

	if !clearForce {
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete %d completed task(s)?", len(ids)),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Clear operation cancelled.")
			return nil
		}
	}

	for _, id := range ids {
		if _, err := sess.Dispatch(engine.Delete{ID: id}); err != nil {
			return fmt.Errorf("failed to delete task %s: %w", id, err)
		}
	}
	if saveErr := sess.LastSaveErr(); saveErr != nil {
		LogError("save failed, deletions kept in memory for this session", saveErr)
	}

	fmt.Printf("Cleared %d completed task(s).\n", len(ids))
	return nil
}
