package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/busybox42/edkey/internal/config"
)

// Exit codes. Failures other than verify's exitError use exitInvalid.
const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

// exitStatus carries a specific process exit code out of a command.
type exitStatus struct {
	code int
	err  error
}

func (e *exitStatus) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitStatus) Unwrap() error { return e.err }

type app struct {
	configPath string
	logLevel   string
	encoding   string
	text       bool

	cfg *config.Config
	log *logrus.Logger
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	return log
}

// NewRootCommand builds the edkey command tree.
func NewRootCommand() *cobra.Command {
	a := &app{log: newLogger()}

	root := &cobra.Command{
		Use:               "edkey",
		Short:             "Ed25519 key generation, signing and verification",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/edkey/config.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	root.PersistentFlags().StringVarP(&a.encoding, "encoding", "e", "", "text encoding for keys and signatures: hex or base64 (overrides config)")
	root.PersistentFlags().BoolVar(&a.text, "text", false, "always print encoded text, even when stdout is not a terminal")

	root.AddCommand(a.generateCmd(), a.publicCmd(), a.signCmd(), a.verifyCmd(), a.fingerprintCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(NewRootCommand())
}

func run(root *cobra.Command) int {
	err := root.Execute()
	if err == nil {
		return exitOK
	}

	var status *exitStatus
	if errors.As(err, &status) {
		if status.err != nil {
			fmt.Fprintf(root.ErrOrStderr(), "error: %s\n", status.err)
		}
		return status.code
	}

	fmt.Fprintf(root.ErrOrStderr(), "error: %s\n", err)
	return exitInvalid
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Output.Encoding = a.encoding
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())
	a.cfg = cfg

	a.log.WithField("config", a.configPath).Debug("Configuration loaded")
	return nil
}

// textOutput reports whether results should be printed as encoded text.
func (a *app) textOutput(w io.Writer) bool {
	if a.text {
		return true
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// emit writes b as encoded text or as raw bytes depending on the output.
func (a *app) emit(cmd *cobra.Command, label string, b []byte) error {
	out := cmd.OutOrStdout()
	if a.textOutput(out) {
		_, err := fmt.Fprintf(out, "%-5s%s\n", label, encode(a.cfg.Output.Encoding, b))
		return err
	}
	_, err := out.Write(b)
	return err
}
