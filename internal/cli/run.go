package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/yakstack/internal/engine"
	"github.com/roach88/yakstack/internal/frame"
	"github.com/roach88/yakstack/internal/store"
)

// NewRunCommand creates the run command: materialize the log, print the
// current view, then tail live frames until interrupted.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Materialize the log and tail live frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, err := store.Open(opts.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			if _, err := s.EnsureDefaultYak(ctx); err != nil {
				return WrapExitError(ExitCommandError, "initialize store", err)
			}

			e := engine.New(s)
			w := cmd.OutOrStdout()

			// Tail live frames. The listener sees the threshold frame
			// too, which is where tailing switches on.
			var live atomic.Bool
			unsub := s.OnFrame(func(f frame.Frame) {
				if f.Topic == frame.TopicThreshold {
					live.Store(true)
					return
				}
				if live.Load() {
					fmt.Fprintf(w, "frame %s  %s\n", f.ID, f.Topic)
				}
			})
			defer unsub()

			g, gCtx := errgroup.WithContext(ctx)
			g.Go(func() error { return e.Run(gCtx) })

			if err := waitThreshold(gCtx, e); err != nil {
				stop()
				_ = g.Wait()
				return err
			}

			if err := printView(w, opts.Format, e); err != nil {
				stop()
				_ = g.Wait()
				return err
			}

			// Block until interrupt or engine failure.
			err = g.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// printView renders the current yak and its notes.
func printView(w io.Writer, format string, e *engine.Engine) error {
	yak, _ := e.CurrentYak()
	notes, _ := e.CurrentNotes()

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Yak   *engine.Yak   `json:"yak"`
			Notes []engine.Note `json:"notes"`
		}{yak, notes})
	}

	if yak == nil {
		fmt.Fprintln(w, "no current yak")
		return nil
	}

	fmt.Fprintf(w, "%s (%s)\n", yak.Name, yak.ID)
	for i, n := range notes {
		fmt.Fprintf(w, "%3d. %s  %s\n", i+1, n.ID, n.Title)
	}
	return nil
}
