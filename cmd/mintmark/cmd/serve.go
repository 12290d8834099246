package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mintmark/mintmark/internal/server"
	"github.com/mintmark/mintmark/internal/store"
	"github.com/mintmark/mintmark/pkg/logging"
)

var serveFlags struct {
	addr string
	db   string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference remote store server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := store.Open(serveFlags.db)
		if err != nil {
			return err
		}
		defer st.Close()

		log := logging.Default()
		srv := &http.Server{
			Addr:              serveFlags.addr,
			Handler:           server.New(st, server.WithLogger(log)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-cmd.Context().Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		log.Info().Str("addr", serveFlags.addr).Str("db", serveFlags.db).Msg("Serving item store")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8000", "listen address")
	serveCmd.Flags().StringVar(&serveFlags.db, "db", "items.db", "sqlite database path")
	rootCmd.AddCommand(serveCmd)
}
