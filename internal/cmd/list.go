package cmd

import (
	"encoding/json"
	"fmt"

	"codelaunch/internal/catalog"
	"codelaunch/internal/errors"
	"codelaunch/internal/selection"
	"codelaunch/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7B61FF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func (o *options) listCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the workspaces in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := selection.Arrange(catalog.Load(o.store.Current()))
			entries := make([]types.WorkspaceEntry, len(items))
			for i, item := range items {
				entries[i] = item.Entry
			}

			out := cmd.OutOrStdout()
			switch format {
			case "table":
				if len(entries) == 0 {
					fmt.Fprintln(out, "No workspaces found.")
					return nil
				}
				fmt.Fprintln(out, renderTable(entries))
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(entries); err != nil {
					return err
				}
				return enc.Close()
			default:
				return errors.Newf("unsupported format %q", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

func renderTable(entries []types.WorkspaceEntry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ENVIRONMENT", "NAME", "FILE", "MODIFIED")
	for _, e := range entries {
		modified := "-"
		if !e.Modified.IsZero() {
			modified = humanize.Time(e.Modified)
		}
		t.Row(e.Environment.Marker(), e.DisplayName, e.FileName, modified)
	}
	return t.Render()
}
