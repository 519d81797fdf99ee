package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/extdoc-hq/extdoc/internal/api"
	"github.com/extdoc-hq/extdoc/internal/pipeline"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		src  sourceFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the model and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(g.dir, &src, nil)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = p.env.Addr
			}

			reg := prometheus.NewRegistry()
			metrics := pipeline.NewMetrics()
			reg.MustRegister(metrics)

			res, err := p.run(cmd.Context(), &src, metrics)
			if err != nil {
				return err
			}
			printSummary(cmd, res)

			srv := api.NewServer(reg)
			srv.SetModel(res.Model, res.RunID)

			httpServer := &http.Server{
				Addr:         addr,
				Handler:      srv.Router(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown
			done := make(chan struct{})
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			go func() {
				defer close(done)
				<-quit
				log.Info().Msg("server is shutting down...")

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("could not gracefully shutdown the server")
				}
			}()

			log.Info().Str("addr", addr).Msg("server is ready to handle requests")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			<-done
			log.Info().Msg("server stopped")
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from EXTDOC_ADDR)")

	return cmd
}
