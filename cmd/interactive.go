package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyenvanduocit/zhtrans/pkg/session"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	tr, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	// Ctrl+C ends the session at the next prompt instead of killing the process.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := cancelOnSignal(cmd.Context(), sigChan)
	defer cancel()

	s := session.New(tr, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	logger.WithField("session_id", s.ID()).Debug("session started")

	// A non-zero exit code always comes with the fault that caused it.
	_, err = s.Run(ctx)
	return err
}

// cancelOnSignal returns a context that is cancelled on the first value from
// signals.
func cancelOnSignal(parent context.Context, signals <-chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
