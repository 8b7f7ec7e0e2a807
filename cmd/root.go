// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jackchuka/reponest/internal/config"
	"github.com/jackchuka/reponest/internal/log"
	"github.com/jackchuka/reponest/tui"
)

var (
	cfgFile string
	cfg     *config.Config

	flagMaxDepth int
	flagExclude  []string
	flagTheme    string
	flagDirty    bool
	flagConflict bool

	flagPrintConfig bool
	flagCwdFile     string
)

var rootCmd = &cobra.Command{
	Use:   "reponest [path]",
	Short: "Discover and monitor git repositories, nested ones included",
	Long: `
  ┬─┐┌─┐┌─┐┌─┐┌┐┌┌─┐┌─┐┌┬┐
  ├┬┘├┤ ├─┘│ ││││├┤ └─┐ │
  ┴└─└─┘┴  └─┘┘└┘└─┘└─┘ ┴

  TUI dashboard for discovering and monitoring git repositories,
  including repos nested inside other working trees. Scans the
  configured paths concurrently and streams status as it arrives.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.ScanPaths = []string{config.ExpandHome(args[0])}
		}

		if flagPrintConfig {
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		}

		if len(cfg.ScanPaths) == 0 {
			fmt.Fprintf(os.Stderr, "No scan paths configured.\n")
			fmt.Fprintf(os.Stderr, "Run 'reponest init' to set up, or add paths to %s\n", cfgFile)
			return nil
		}

		log.Initialize()
		defer log.Close()

		return tui.Run(cfg, tui.Options{
			CwdFile:      flagCwdFile,
			OnlyDirty:    flagDirty,
			OnlyConflict: flagConflict,
		})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/reponest/config.yaml)")
	pf.IntVar(&flagMaxDepth, "max-depth", -1, "directory depth limit, 0 for unlimited (overrides config file)")
	pf.StringSliceVar(&flagExclude, "exclude", nil, "extra directory patterns to skip (repeatable)")
	pf.StringVar(&flagTheme, "theme", "", "color theme: default, dark or light")
	pf.BoolVar(&flagDirty, "dirty", false, "show only repositories with local changes")
	pf.BoolVar(&flagConflict, "conflict", false, "show only repositories with conflicts")

	rootCmd.Flags().BoolVar(&flagPrintConfig, "print-config", false, "print the effective config as YAML and exit")
	rootCmd.Flags().StringVar(&flagCwdFile, "cwd-file", "", "write the selected repo path to this file on exit")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flag overrides on top of the file
	if flagMaxDepth >= 0 {
		cfg.MaxDepth = flagMaxDepth
	}
	if len(flagExclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, flagExclude...)
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
}
