package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kaczmarj/gonifti/internal/output"
	"github.com/kaczmarj/gonifti/nifti2"
	"github.com/kaczmarj/gonifti/xform"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newAffineCmd(a *app) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "affine FILE",
		Short: "Print the voxel-to-world transform",
		Long: `Print the 4x4 voxel-to-world transform of a header, its inverse and the
orientation code of its axes.

The transform comes from the stored matrix (sform) when sform_code is set,
otherwise from the quaternion (qform). Use --source to choose explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := a.readHeader(args[0])
			if err != nil {
				return err
			}

			m, err := selectTransform(h, source)
			if err != nil {
				return err
			}
			checkHandedness(h)
			return printTransform(cmd.OutOrStdout(), m)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "transform to print: qform or sform (default: sform if set)")
	return cmd
}

func selectTransform(h *nifti2.Header, source string) (xform.Mat44, error) {
	switch source {
	case "qform":
		return h.QformMat(), nil
	case "sform":
		return h.SformMat(), nil
	case "":
		if h.SformCode > 0 {
			return h.SformMat(), nil
		}
		return h.QformMat(), nil
	}
	return xform.Mat44{}, fmt.Errorf("invalid transform source: %q (valid: qform, sform)", source)
}

// checkHandedness warns when both transforms are set but disagree on
// handedness. The header is still usable.
func checkHandedness(h *nifti2.Header) {
	if h.QformCode <= 0 || h.SformCode <= 0 {
		return
	}
	if xform.HandednessMismatch(h.SformMat(), h.QformMat()) {
		log.WithFields(log.Fields{
			"qformCode": h.QformCode,
			"sformCode": h.SformCode,
		}).Warn("qform and sform differ in handedness")
	}
}

func matrixRows(m xform.Mat44) [][]string {
	rows := make([][]string, 4)
	for i, row := range m {
		rows[i] = make([]string, 4)
		for j, v := range row {
			rows[i][j] = strconv.FormatFloat(v, 'g', 7, 64)
		}
	}
	return rows
}

func printTransform(w io.Writer, m xform.Mat44) error {
	fmt.Fprintln(w, "Transform:")
	if err := output.MatrixTable(w, matrixRows(m)); err != nil {
		return err
	}

	fmt.Fprintln(w, "Inverse:")
	if inv, ok := m.Inverse(); ok {
		if err := output.MatrixTable(w, matrixRows(inv)); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, "  (singular)")
	}

	code, ok := xform.SFormToNEMA(m.Rotation())
	if !ok {
		code = "unknown"
	}
	_, err := fmt.Fprintf(w, "Orientation: %s\n", code)
	return err
}
