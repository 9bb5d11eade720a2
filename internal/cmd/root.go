// Package cmd holds the codelaunch command tree.
package cmd

import (
	"fmt"

	"codelaunch/internal/config"
	"codelaunch/internal/log"

	"github.com/spf13/cobra"
)

// skipConfig marks commands that run without loading the configuration.
const skipConfig = "skip-config"

// options carries the persistent flags and the state loaded before a
// command runs.
type options struct {
	version string
	cfgFile string
	debug   bool
	logFile string

	store *config.Store
}

// NewRootCmd builds the command tree. Without a subcommand the launcher
// window is opened.
func NewRootCmd(version string) *cobra.Command {
	o := &options{version: version}

	rootCmd := &cobra.Command{
		Use:   "codelaunch",
		Short: "Open VS Code workspaces from a button grid",
		Long: `codelaunch lists the .code-workspace files under the configured root,
split into WSL and Windows workspaces by the [WSL] and [Win] markers in
their names, and opens the selected one with VS Code Stable or Insiders.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runFrontEnd(frontAuto)
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default is config.json beside the executable)")
	rootCmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&o.logFile, "log-file", "", "log file (default is codelaunch.log beside the executable)")

	rootCmd.AddCommand(
		o.guiCmd(),
		o.tuiCmd(),
		o.listCmd(),
		o.launchCmd(),
		o.configCmd(),
		o.versionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree. A non-nil error means exit status 1.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

func (o *options) setup(cmd *cobra.Command) error {
	level := "warn"
	if o.debug {
		level = "debug"
	}
	log.SetDebug(o.debug)

	logFile := o.logFile
	if logFile == "" {
		logFile = log.DefaultFilePath()
	}
	log.Configure(log.WithLevel(level), log.WithFile(logFile))
	log.Info("====== APPLICATION STARTING ======")
	log.LogWithFields(log.F("version", o.version), log.F("command", cmd.Name())).Debug("starting")

	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}
	store, err := config.Load(o.cfgFile)
	if err != nil {
		log.LogWithError(err).Error("failed to load configuration")
		return fmt.Errorf("cannot start: %w", err)
	}
	o.store = store
	return nil
}

func (o *options) title() string {
	return "CodeLaunch " + o.version
}

func (o *options) configPath() string {
	if o.cfgFile != "" {
		return o.cfgFile
	}
	return config.DefaultPath()
}
