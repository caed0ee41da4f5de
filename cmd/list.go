package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/taskpad/taskpad/internal/ui"
	"github.com/taskpad/taskpad/view"
)

var (
	listStatus string
	listSearch string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List your tasks, optionally narrowed by completion state and a
search term. Search matches the name or description, case-insensitively.

Examples:
  taskpad list
  taskpad list --status active
  taskpad list --status completed --search milk`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "filter by status: all, active or completed")
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "search name and description")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := view.ParseFilter(listStatus)
	if err != nil {
		return err
	}

	sess, st, err := OpenSession()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer func() { _ = st.Close() }()

	tasks := sess.Tasks()
	if len(tasks) == 0 {
		cmd.Println("No tasks yet.")
		cmd.Println("Add one with: taskpad add \"Your first task\"")
		return nil
	}

	visible := slices.Collect(view.Project(tasks, filter, listSearch))
	total, completed := view.Counts(tasks)

	out := cmd.OutOrStdout()
	ui.RenderTaskList(out, visible, total, completed)

	if len(visible) == 0 {
		cmd.Println("No tasks match.")
	}
	return nil
}
