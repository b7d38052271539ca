package main

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := ParseOptions(os.Args)
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stdout)
			return
		}
		NewLogger(false, false).Fatal(err.Error())
	}

	logger := NewLogger(opts.Debug, opts.Quiet)

	if err := run(app.Context(), logger, opts); err != nil {
		logger.Fatal(err.Error())
	}
}

/// run boots the ROM and drives it until the user quits.
///
func run(ctx context.Context, logger *log.Logger, opts Options) error {
	m := NewMachine(logger, opts.Delay, opts.Trace)

	// a rom that can't be loaded stops here, before any window opens
	if err := m.Boot(opts.ROM); err != nil {
		return err
	}

	fe, err := openFrontend(logger, opts)
	if err != nil {
		return err
	}
	defer fe.Close()

	return m.Run(ctx, fe)
}

func openFrontend(logger *log.Logger, opts Options) (Frontend, error) {
	if opts.Terminal {
		return NewTerminal(logger)
	}
	return NewWindow(opts.Scale, logger)
}
