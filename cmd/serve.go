package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/modelwatch/bedrock-catalog/internal/store"
)

var servePort int

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog documents over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: catalogRouter(cfg.Output.Dir),
		}

		go awaitShutdown(ctx, srv)

		zap.L().Info("starting catalog server",
			zap.Int("port", port),
			zap.String("output_dir", cfg.Output.Dir),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// awaitShutdown blocks until ctx is canceled, then drains the server. The
// shutdown gets its own deadline; the signal context is already dead by then.
func awaitShutdown(ctx context.Context, srv *http.Server) {
	<-ctx.Done()
	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("server shutdown incomplete", zap.Error(err))
	}
}

// catalogRouter builds the read-only catalog API over the output directory.
func catalogRouter(outputDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Get("/api/models", serveDocument(filepath.Join(outputDir, store.ModelsFile)))
	r.Get("/api/profiles", serveDocument(filepath.Join(outputDir, store.ProfilesFile)))
	r.Get("/api/beta", serveDocument(filepath.Join(outputDir, store.BetaFile)))

	return r
}

// serveDocument returns a handler streaming one catalog JSON document.
func serveDocument(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				http.Error(w, `{"error":"document not generated yet"}`, http.StatusNotFound)
				return
			}
			zap.L().Error("failed to read catalog document",
				zap.String("path", path),
				zap.Error(err),
			)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
