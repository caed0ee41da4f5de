// Package ui renders task lists for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/taskpad/taskpad/models"
)

// RenderTaskList writes the visible tasks plus a counter header. The counters
// reflect the whole collection, not the filtered view, so the header stays
// stable while filtering.
func RenderTaskList(w io.Writer, tasks []models.Task, total, completed int) {
	fmt.Fprintln(w, StyleHeader.Render(fmt.Sprintf("Tasks: %d total • %d done • %d open", total, completed, total-completed)))
	fmt.Fprintln(w, StyleSubtle.Render(strings.Repeat("─", 50)))

	for _, t := range tasks {
		checkbox := "[ ]"
		name := StyleTitle.Render(t.Name)
		if t.Completed {
			checkbox = StyleSuccess.Render("[x]")
			name = StyleSubtle.Render(t.Name)
		}
		fmt.Fprintf(w, " %s %s %s\n", checkbox, name, StyleSubtle.Render("("+shortID(t.ID)+")"))
		fmt.Fprintf(w, "     %s\n", StyleSubtle.Render(t.Description))
	}
}

// shortID keeps list output readable; full IDs show in task details.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
