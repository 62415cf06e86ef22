// Package main implements tuidock, a terminal docking workspace.
// Tabs of documents and tools are dragged with the mouse between split
// panes, docked on pane edges or floated into their own windows.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/tuidock/internal/theme"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode       bool
	asciiOnly       bool
	themeName       string
	listThemes      bool
	borderStyle     string
	floatingMode    string
	noGlobalDocking bool
	hideStatusBar   bool
	logLevel        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuidock",
		Short: "Terminal docking workspace",
		Long: `tuidock - Terminal docking workspace

Drag tabs between split panes with the mouse. Drop a tab on the centre of
a pane to join it, on a pane edge to split it, on the workspace edge to
dock it along the whole layout, or outside every pane to float it.`,
		Example: `  # Run tuidock
  tuidock

  # Run with debug logging
  tuidock --debug

  # Float tabs in windows managed on the shared overlay
  tuidock --floating-mode managed

  # Run with a specific theme
  tuidock --theme dracula

  # List all available themes
  tuidock --list-themes

  # Serve tuidock in the browser
  tuidock web

  # Serve tuidock over SSH
  tuidock ssh --port 2222

  # Edit configuration
  tuidock config edit

  # List all keybindings
  tuidock keybinds list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				for _, t := range theme.ListThemes() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters for borders and tab markers")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Pane border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&floatingMode, "floating-mode", "", "Floating windows: native or managed (default: from config or native)")
	rootCmd.PersistentFlags().BoolVar(&noGlobalDocking, "no-global-docking", false, "Disable docking along the workspace edges")
	rootCmd.PersistentFlags().BoolVar(&hideStatusBar, "hide-status-bar", false, "Hide the bottom status line")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default: from config or info)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuidock configuration",
		Long:  `Manage tuidock configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tuidock configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuidock configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuidock configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect tuidock keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve tuidock in the browser",
		Long: `Serve tuidock through a web terminal

Every browser session gets its own workspace.`,
		Example: `  tuidock web`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer()
		},
	}

	var sshHost, sshPort, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run tuidock as an SSH server",
		Long: `Run tuidock as an SSH server

Every SSH connection gets its own workspace. The server generates a host
key next to the config file if --key-path is not given.`,
		Example: `  # Start SSH server on default port
  tuidock ssh

  # Listen on all interfaces with a custom port
  tuidock ssh --host 0.0.0.0 --port 2323

  # Specify custom host key
  tuidock ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	rootCmd.AddCommand(configCmd, keybindsCmd, webCmd, sshCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
