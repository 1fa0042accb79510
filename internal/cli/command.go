package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Options configures a sizetree run.
type Options struct {
	// Path is the file or directory to scan.
	Path string
	// Output is the output format (tui, table or json).
	Output string
	// Depth is the initial expansion depth; 1 expands only the root.
	Depth int
	// Exclude holds glob patterns for entry names to leave out of the scan.
	Exclude []string
	// NoFollow disables following symbolic links.
	NoFollow bool
	// Debug enables debug logging.
	Debug bool
	// LogFile is the log destination. Empty logs to stderr.
	LogFile string
}

// allowedOutputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"tui", "table", "json"}

// Validate checks option values that flags cannot enforce.
func (o Options) Validate() error {
	if !slices.Contains(allowedOutputs, o.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", o.Output, allowedOutputs)
	}

	if o.Depth < 0 {
		return errors.New("depth cannot be negative")
	}

	return nil
}

// Execute runs the CLI with the process arguments.
// SIGINT, SIGTERM and SIGHUP end an interactive session cleanly.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options Options

	cmd := &cobra.Command{
		Use:   "sizetree [flags] [path]",
		Short: "Explore disk usage as an expandable tree",
		Long: heredoc.Doc(`
			sizetree measures the size of every file and directory below a path
			and shows the result as an expandable tree in the terminal.

			Positional Arguments:
			  path                   File or directory to scan. Defaults to the current directory.

			Keys:
			  j/k, up/down           Move the selection
			  enter, space           Expand or collapse the selected directory
			  l/h, right/left        Expand, or collapse and jump to the parent
			  g/G, home/end          Jump to the first or last line
			  q, esc, ctrl-c         Quit

			Entries that cannot be read are shown with a size of '?'.
			When stdout is not a terminal the tree is printed as a table instead.
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Path = "."
			if len(args) > 0 {
				options.Path = args[0]
			}

			if err := options.Validate(); err != nil {
				return err
			}

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	bindFlags(cmd.Flags(), &options)

	return cmd
}

// bindFlags registers the command-line flags on flags.
func bindFlags(flags *pflag.FlagSet, options *Options) {
	flags.StringVarP(&options.Output, "output", "o", "tui", "Output format: tui, table or json")
	flags.IntVarP(&options.Depth, "depth", "d", 1, "Initial expansion depth (0 collapses the root)")
	flags.StringSliceVarP(&options.Exclude, "exclude", "e", nil, "Glob patterns for entry names to skip (e.g. node_modules,*.log)")
	flags.BoolVar(&options.NoFollow, "no-follow", false, "Do not follow symbolic links")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	flags.StringVar(&options.LogFile, "log-file", "", "Write logs to this file instead of stderr")

	flags.SortFlags = false
}
