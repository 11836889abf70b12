// Package cmd implements the gonifti command line.
package cmd

import (
	"fmt"
	"io"

	"github.com/kaczmarj/gonifti/internal/config"
	"github.com/kaczmarj/gonifti/nifti"
	"github.com/kaczmarj/gonifti/nifti1"
	"github.com/kaczmarj/gonifti/nifti2"
	"github.com/kaczmarj/gonifti/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	fs       afero.Fs
	cfgFile  string
	logLevel string
	cfg      *config.Config
}

// NewRootCmd returns the gonifti command tree reading files from fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	root := &cobra.Command{
		Use:   "gonifti",
		Short: "Inspect NIfTI-1 and NIfTI-2 headers",
		Long: `gonifti decodes the header of a NIfTI-1 (.nii, 348 byte) or NIfTI-2
(540 byte) image in either byte order and prints its fields and transforms.

Use "gonifti [command] --help" for more information about a command.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/gonifti/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newHeaderCmd(a))
	root.AddCommand(newAffineCmd(a))
	root.AddCommand(newVersionCmd())
	root.CompletionOptions.DisableDefaultCmd = true

	return root
}

// Execute runs the command tree against the OS filesystem.
func Execute() error {
	return NewRootCmd(afero.NewOsFs()).Execute()
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := setupLogging(cfg.Logging, cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func setupLogging(cfg config.LoggingConfig, w io.Writer) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(w)
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}
	return nil
}

// readHeader decodes the header of filename, whichever version it is.
func (a *app) readHeader(filename string) (*nifti2.Header, int, error) {
	b, err := util.ReadHeaderBytes(a.fs, filename, a.cfg.Read.Limit)
	if err != nil {
		return nil, 0, err
	}

	version, err := nifti.DetectVersion(b)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", filename, err)
	}

	log.WithFields(log.Fields{
		"file":    filename,
		"version": version,
	}).Debug("Detected header version")

	var h *nifti2.Header
	if version == 1 {
		h, err = nifti1.Decode(b)
	} else {
		h, err = nifti2.ReadHeader(b)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", filename, err)
	}
	return h, version, nil
}
