package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SaumitraLohokare/sizetree/internal/logging"
	"github.com/SaumitraLohokare/sizetree/internal/render"
	"github.com/SaumitraLohokare/sizetree/internal/session"
	"github.com/SaumitraLohokare/sizetree/internal/sizetree"
)

func logic(ctx context.Context, options Options, stdout, stderr io.Writer) error {
	output := strings.ToLower(options.Output)

	tty, interactive := terminal(stdout)
	if output == "tui" && !(interactive && isTerminal(os.Stdin)) {
		output = "table"
	}

	logConfig := logging.Config{Level: "warn", OutputPath: "stderr"}
	if options.Debug {
		logConfig.Level = "debug"
	}

	if options.LogFile != "" {
		logConfig.OutputPath = options.LogFile
	}

	if err := logging.Init(logConfig); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	defer func() {
		// Syncing stderr fails on some platforms; only a log file is worth reporting.
		if err := logging.Sync(); err != nil && options.LogFile != "" {
			fmt.Fprintf(stderr, "sizetree: flushing log file %q: %v\n", options.LogFile, err) //nolint:errcheck // Best effort
		}
	}()

	log := logging.L()

	builder := sizetree.Builder{
		Exclude:  options.Exclude,
		NoFollow: options.NoFollow,
		Logger:   log,
	}

	tree, err := builder.Build(options.Path)
	if err != nil {
		log.Debug("scan failed", zap.Stringer("kind", sizetree.KindOf(err)), zap.Error(err))

		return err
	}

	tree.Root.ExpandTo(options.Depth)

	switch output {
	case "json":
		return PrintJSON(tree, stdout)
	case "table":
		return PrintTable(tree, stdout)
	case "tui":
		// Anything below errors would be drawn over the tree.
		if options.LogFile == "" {
			log = log.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
		}

		return session.Run(ctx, tree, render.NewTTY(os.Stdin, tty), session.Options{
			Input:  os.Stdin,
			Logger: log,
		})
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}

// terminal returns w as a file when it is a terminal.
func terminal(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return nil, false
	}

	return f, true
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
