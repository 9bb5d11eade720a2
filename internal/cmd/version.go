package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (o *options) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codelaunch %s\n", o.version)
		},
	}
}
