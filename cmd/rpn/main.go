package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atinylittleshell/rpn/internal/core"
	"github.com/atinylittleshell/rpn/internal/repl"
	"github.com/atinylittleshell/rpn/internal/repl/config"
	"github.com/atinylittleshell/rpn/internal/repl/input"
	"github.com/atinylittleshell/rpn/internal/styles"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

func main() {
	// Initialize the logger
	logger, err := initializeLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("failed to initialize logger: %v", err)))
		os.Exit(1)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new rpn session --------", zap.String("version", BUILD_VERSION))

	cfg := config.DefaultConfig()
	cfg.BuildVersion = BUILD_VERSION

	err = run(context.Background(), cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		fmt.Fprintln(os.Stderr, styles.LOG("details in "+core.LogFile()))
		os.Exit(1)
	}
}

// run starts the REPL on in and out. A terminal gets the line editor,
// anything else is read line by line.
func run(ctx context.Context, cfg *config.Config, in *os.File, out io.Writer, logger *zap.Logger) error {
	interactive := term.IsTerminal(int(in.Fd()))

	var reader repl.LineReader
	if interactive {
		reader = input.NewReader(input.ReaderOptions{
			Input:  in,
			Output: out,
			Logger: logger.Named("input"),
		})
	} else {
		reader = input.NewScannerReader(in, out)
	}

	r, err := repl.NewREPL(repl.Options{
		Config: cfg,
		Reader: reader,
		Output: out,
		TermWidth: func() int {
			width, _, err := term.GetSize(int(in.Fd()))
			if err != nil {
				return 0
			}
			return width
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer r.Close()

	logger.Debug("starting REPL", zap.Bool("interactive", interactive))
	return r.Run(ctx)
}

func initializeLogger() (*zap.Logger, error) {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	// Logs only go to file to avoid interfering with the Bubble Tea UI

	return loggerConfig.Build()
}
