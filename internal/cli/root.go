package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bottlerocket-os/settings-sdk-go/internal/branding"
	"github.com/bottlerocket-os/settings-sdk-go/internal/config"
	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// Extension is the settings extension served by the command tree.
type Extension interface {
	Name() string
	Models() []model.Model
	Set(version string, value, current model.Value) (model.Value, error)
	Generate(version string, existingPartial, requiredSettings model.Value) (model.GenerateResult[model.Value, model.Value], error)
	Validate(version string, value, requiredSettings model.Value) (bool, error)
	Migrate(value model.Value, from, to string) (model.Value, error)
}

// Options controls one execution of the command tree.
type Options struct {
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Build info injected via ldflags.
	Version string
	Commit  string
	Date    string
}

// app carries the state shared by the commands of one execution.
type app struct {
	ext        Extension
	opts       Options
	configPath string
	cfg        *config.Config
}

// Execute runs the command tree for ext with opts.Args. A failing command's
// error is printed to opts.Stderr and returned.
func Execute(ext Extension, opts Options) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	root := newRootCmd(ext, opts)
	root.SetArgs(opts.Args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newRootCmd(ext Extension, opts Options) *cobra.Command {
	a := &app{ext: ext, opts: opts}

	root := &cobra.Command{
		Use:   ext.Name(),
		Short: fmt.Sprintf("%s for the %s setting", branding.DisplayName(), ext.Name()),
		Long: branding.Description() + `.

The ` + branding.Protocol() + ` commands are invoked by the settings orchestrator. Values are
exchanged as JSON; results are printed to stdout and errors to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Path(a.configPath), cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if err := config.ConfigureLogging(a.opts.Stderr, cfg.LogLevel); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a YAML configuration file (default $"+branding.EnvVar("CONFIG")+")")
	pf.String("log-level", config.DefaultLogLevel, "Level of log messages written to stderr (TRACE, DEBUG, INFO, WARNING, ERROR)")
	pf.StringP("output", "o", config.FormatJSON, "Output format: json or yaml")
	pf.Bool("compact", false, "Print JSON output on a single line")

	root.AddCommand(newProto1Cmd(a))
	root.AddCommand(newModelsCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}
