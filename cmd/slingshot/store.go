package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/levelstore"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/storage"
)

var (
	flagStoreAddr string
	flagWatchDir  string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Run the level store HTTP API",
	Long: `Serve level documents over HTTP for the editor and the game.

Routes (under /api/v1):
  GET    /levels          - Level ids in creation order
  POST   /levels          - Create a level, returns its id
  GET    /levels/{id}     - Fetch a level
  PUT    /levels/{id}     - Create or replace a level
  DELETE /levels/{id}     - Delete a level
  GET    /events          - Websocket feed of level changes

With --watch, every *.json file in the directory is imported as the level
named after the file, and kept in sync while the store runs.

Examples:
  slingshot store
  slingshot store --addr :8080 --db ./levels.db
  slingshot store --watch ./levels`,
	Args: cobra.NoArgs,
	Run:  runStore,
}

func init() {
	storeCmd.Flags().StringVar(&flagStoreAddr, "addr", ":3000", "HTTP listen address")
	storeCmd.Flags().StringVar(&flagWatchDir, "watch", "", "Directory of level files to import and follow")
}

func runStore(_ *cobra.Command, _ []string) {
	logger := newServiceLogger("levelstore")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("%v", err)
	}
	defer store.Close()

	srv := levelstore.NewServer(store, logger)
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagWatchDir != "" {
		im, err := levelstore.NewImporter(flagWatchDir, srv, logger)
		if err != nil {
			fatalf("%v", err)
		}
		defer im.Close()

		n, err := im.Scan()
		if err != nil {
			fatalf("%v", err)
		}
		logger.Info("imported level files", "dir", flagWatchDir, "count", n)
		go im.Run(ctx)
	}

	httpSrv := &http.Server{
		Addr:              flagStoreAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down...")
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("level store listening", "addr", flagStoreAddr, "db", flagDBPath)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
