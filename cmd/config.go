package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vedit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the vedit configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long: `Write a commented default configuration file.

Without a path the file is written to ~/.config/vedit/config.yaml,
or .vedit/config.yaml with --local.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one value in the configuration file",
	Long: `Set one value in the configuration file, keeping its comments.

The file used is the one vedit would read (see --config). When none
exists, ~/.config/vedit/config.yaml is created.`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		keys := config.Keys()
		sort.Strings(keys)
		return keys, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runConfigSet,
}

func init() {
	configInitCmd.Flags().Bool("local", false, "write .vedit/config.yaml in the current directory")
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	local, _ := cmd.Flags().GetBool("local")
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultConfigPath()
	switch {
	case len(args) == 1:
		path = args[0]
	case local:
		path = localConfigPath
	}
	if path == "" {
		return fmt.Errorf("cannot determine home directory; pass a path")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = resolveConfigFile(cfgFile)
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if path == "" {
		return fmt.Errorf("cannot determine home directory; pass --config")
	}
	if err := config.SetValue(path, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], filepath.Clean(path))
	return nil
}
