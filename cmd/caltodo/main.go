// Package main is the entry point for the caltodo terminal calendar.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/caltodo/internal/config"
	"github.com/hy4ri/caltodo/internal/logging"
	"github.com/hy4ri/caltodo/internal/store"
	"github.com/hy4ri/caltodo/internal/tui"
)

const version = "0.1.0"

const helpText = `caltodo - Terminal calendar with a todo list for every day

USAGE:
    caltodo [OPTIONS]

OPTIONS:
    -h, --help          Show this help message
    -v, --version       Show version information
    --init              Create a template config file
    --config <path>     Read configuration from path
    --data <path>       Store tasks at path (overrides storage.path)

CONFIGURATION:
    Config file: ~/.config/caltodo/config.yaml
    Tasks:       ~/.local/share/caltodo/tasks.json

KEYBINDINGS:
    Calendar:
        j/[  k/]    Previous/next month
        ←/h  →/l    Previous/next day
        ↑  ↓        Previous/next week
        Enter       Show tasks of the day
        t           Jump to today

    Tasks:
        ↑/k  ↓/j    Move highlight
        Enter/x     Toggle done
        Del/d       Delete task
        y           Copy task text
        a           Add task
        Esc         Leave the input

    Global:
        Ctrl+t      Jump to today
        Ctrl+s      Focus the task input
        Tab         Switch pane
        ?           Show help
        q, Ctrl+c   Quit
`

const configTemplate = `# caltodo configuration
# Location: ~/.config/caltodo/config.yaml

storage:
  # json or sqlite
  backend: json
  # Empty means ~/.local/share/caltodo/tasks.json (tasks.db for sqlite)
  path: ""

ui:
  # How often to check whether the date has changed
  rollover_interval: 60s
  # Send a desktop notification when the date changes
  notify_rollover: false
  # Show the key hint line under the status bar
  show_hints: true

log:
  # Debug log file; empty disables logging
  file: ""
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		configPath  string
		dataPath    string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&configPath, "config", "", "Config file path")
	flag.StringVar(&dataPath, "data", "", "Task storage path")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("caltodo version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate(configPath)
	}

	return runApp(configPath, dataPath)
}

// createConfigTemplate writes the template configuration file.
func createConfigTemplate(path string) error {
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// runApp loads configuration and tasks and starts the TUI.
func runApp(configPath, dataPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataPath != "" {
		cfg.Storage.Path = dataPath
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, "caltodo: ")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s, cfg, tui.WithLogger(logger))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// openStore opens the configured backend and loads it. A corrupt or
// unreadable file starts an empty store: Load logs the error and the next
// save replaces the file.
func openStore(cfg *config.Config, logger *log.Logger) (*store.Store, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	s := store.New(backend, logger)
	_ = s.Load()
	return s, nil
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	path, err := cfg.TaskPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task path: %w", err)
	}

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := store.OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open task database: %w", err)
		}
		return db, nil
	default:
		return store.NewJSONFile(path), nil
	}
}
