package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taskpad/taskpad/engine"
	"github.com/taskpad/taskpad/models"
	"github.com/taskpad/taskpad/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "taskpad",
	Version: version,
	Short:   "taskpad keeps your task list on your own machine.",
	Long: `taskpad is a single-user task tracker for the command line.
It lets you add, list, update, complete and delete short text tasks,
and persists them locally between sessions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.taskpad.yaml or ./.taskpad.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetTaskFilePath returns the full path to the data file.
func GetTaskFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.File)
}

// GetStore initializes and returns the collection store selected by the
// data.backend config key.
func GetStore() (store.CollectionStore, error) {
	config := GetConfig()

	var s store.CollectionStore
	switch config.Data.Backend {
	case "sqlite":
		s = store.NewSQLiteCollectionStore()
	default:
		s = store.NewFileCollectionStore()
	}

	taskFilePath := GetTaskFilePath()

	err := s.Initialize(map[string]string{
		"dataFile":       taskFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", taskFilePath, err)
	}
	return s, nil
}

// OpenSession initializes the store and hydrates an engine session from it.
// Callers own closing the returned store.
func OpenSession() (*engine.Session, store.CollectionStore, error) {
	st, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	return engine.Open(st), st, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from
// the given list, searchable by name or ID prefix.
func selectTaskInteractive(tasks []models.Task, label string) (models.Task, error) {
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Name | cyan }} ({{ .Description | faint }})`,
		Inactive: `  {{ .Name | faint }}`,
		Selected: `{{ "✔" | green }} {{ .Name | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Name:\t" | faint }} {{ .Name }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Completed:\t" | faint }} {{ .Completed }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(task.Name), input) || strings.HasPrefix(task.ID, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // includes promptui.ErrInterrupt
	}

	return tasks[i], nil
}

// findTask resolves an ID (or unique ID prefix) against the collection.
func findTask(tasks []models.Task, id string) (models.Task, bool) {
	var match models.Task
	var count int
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
		if strings.HasPrefix(t.ID, id) {
			match = t
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return models.Task{}, false
}
