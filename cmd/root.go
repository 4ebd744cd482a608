package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vedit/internal/app"
	"github.com/zjrosen/vedit/internal/config"
	"github.com/zjrosen/vedit/internal/filestore"
	"github.com/zjrosen/vedit/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".vedit/config.yaml"
	defaultDebugLog = "vedit-debug.log"
	envPrefix       = "VEDIT"
	debugLogPrefix  = "vedit"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "vedit [file]",
	Short:         "A small modal text editor",
	Long:          `A vi-style modal text editor for the terminal with normal, insert, visual and command modes, undo/redo and dot repeat.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runApp,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .vedit/config.yaml, then ~/.config/vedit/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false,
		"write a debug log (also VEDIT_DEBUG=1)")
	rootCmd.Flags().Int("tab-width", 0, "override editor.tab_width")
	rootCmd.Flags().Bool("no-watch", false, "do not watch the file for external changes")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("editor.tab_width", rootCmd.Flags().Lookup("tab-width"))
}

func initConfig() {
	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// readConfig registers defaults and environment overrides on v and reads
// the first config file found. A missing file is not an error.
func readConfig(v *viper.Viper, explicit string) error {
	config.SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := resolveConfigFile(explicit)
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if explicit == "" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// resolveConfigFile returns the config file to read.
// Lookup order:
// 1. --config flag
// 2. .vedit/config.yaml (current directory)
// 3. ~/.config/vedit/config.yaml (user config)
// Returns "" when no file exists.
func resolveConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath
	}
	if p := config.DefaultConfigPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// setupLogging enables the debug log when --debug, VEDIT_DEBUG or
// log.path asks for it. The returned func closes the log file.
func setupLogging(v *viper.Viper, c config.Config) (func(), error) {
	path := c.Log.Path
	if path == "" && v.GetBool("debug") {
		path = defaultDebugLog
	}
	if path == "" {
		log.SetEnabled(false)
		return func() {}, nil
	}

	cleanup, err := log.InitWithTeaLog(path, debugLogPrefix)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	if lvl, err := log.ParseLevel(c.Log.Level); err == nil {
		log.SetMinLevel(lvl)
	}
	log.Info(log.CatConfig, "Starting", "version", version, "config", v.ConfigFileUsed())
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = loaded

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}

	closeLog, err := setupLogging(viper.GetViper(), cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := app.Options{Config: cfg, Lines: []string{""}}
	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		store := filestore.New(afero.NewOsFs(), path)
		lines, err := store.LoadOrEmpty()
		if err != nil {
			return err
		}
		opts.Store = store
		opts.Lines = lines
	}

	model := app.New(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if m, ok := final.(app.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
