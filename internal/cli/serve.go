package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/termdeck/termdeck/pkg/deck"
)

// newServeCmd creates the serve command: a read-only HTTP preview of a
// built deck. Slides are served as plain text, escape sequences included,
// so `curl` into a terminal shows the styled slide.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <deck-dir>",
		Short: "Serve a built deck over HTTP for preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deck.Read(args[0])
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), d, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

// serveHandler builds the preview router for a deck.
func serveHandler(d *deck.Deck) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/slides", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, s := range d.Slides {
			w.Write([]byte(s.Name + "\n"))
		}
	})

	r.Get("/slides/{n}", func(w http.ResponseWriter, req *http.Request) {
		n, err := strconv.Atoi(chi.URLParam(req, "n"))
		if err != nil || n < 0 || n >= len(d.Slides) {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(d.Slides[n].Text))
	})

	return r
}

func runServe(ctx context.Context, d *deck.Deck, addr string) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{Addr: addr, Handler: serveHandler(d)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving %d slides on http://%s", len(d.Slides), addr)
	logger.Info("listening", "addr", addr, "slides", len(d.Slides))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
