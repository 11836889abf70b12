package cmd

import (
	"fmt"

	"github.com/kaczmarj/gonifti/internal/output"
	"github.com/spf13/cobra"
)

func newHeaderCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "header FILE",
		Short: "Print the header fields",
		Long: `Print every field of a NIfTI-1 or NIfTI-2 header.

Examples:
  # Labeled report
  gonifti header brain.nii

  # Machine readable
  gonifti header brain.nii -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			h, version, err := a.readHeader(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch f {
			case output.FormatTable:
				return output.SimpleTable(w, h.Fields())
			case output.FormatJSON:
				return output.PrintJSON(w, h)
			case output.FormatYAML:
				return output.PrintYAML(w, h)
			}
			_, err = fmt.Fprintf(w, "NIfTI-%d header\n%s", version, h)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "", "output format: text, table, json, yaml (default from config)")
	return cmd
}
