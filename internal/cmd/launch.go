package cmd

import (
	"codelaunch/internal/catalog"
	"codelaunch/internal/errors"
	"codelaunch/internal/launch"
	"codelaunch/pkg/types"

	"github.com/spf13/cobra"
)

func (o *options) launchCmd() *cobra.Command {
	var (
		env      string
		insiders bool
		stable   bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "launch <file>",
		Short: "Open one workspace file without the launcher window",
		Long: `Open a workspace file from the configured root. The environment is taken
from the [WSL] or [Win] marker in the name unless --env is given, and the
edition defaults to the last one selected in the launcher.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.store.Current()
			req := launch.Request{FileName: args[0], Edition: cfg.LastSelectedEdition}

			if env != "" {
				parsed, err := types.ParseEnvironment(env)
				if err != nil {
					return err
				}
				req.Environment = parsed
			} else {
				entry, err := catalog.Classify(args[0])
				if err != nil {
					return errors.Wrap(err, "cannot tell the environment, use --env")
				}
				req.Environment = entry.Environment
			}
			switch {
			case insiders:
				req.Edition = types.Insiders
			case stable:
				req.Edition = types.Stable
			}

			var starter launch.Starter
			if dryRun {
				starter = launch.DryRunStarter{Out: cmd.OutOrStdout()}
			}
			_, err := launch.NewGate(starter).Launch(req, cfg)
			return err
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "environment: native or virtualized")
	cmd.Flags().BoolVar(&insiders, "insiders", false, "use VS Code Insiders")
	cmd.Flags().BoolVar(&stable, "stable", false, "use VS Code Stable")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the command instead of running it")
	cmd.MarkFlagsMutuallyExclusive("insiders", "stable")
	return cmd
}
