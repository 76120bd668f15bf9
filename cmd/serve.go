package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/catalog"
	"github.com/Tjindl/HackTheCoast-sub000/internal/logger"
	"github.com/Tjindl/HackTheCoast-sub000/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the award matching HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", defaultListen, "address for the HTTP API to listen on")
	serveCmd.Flags().String("database", defaultDatabase, "path to the catalog database")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("database", serveCmd.Flags().Lookup("database"))
}

func serve() {
	ctx := context.Background()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the awardmatch api", zap.String("version", version))

	store := openCatalog(config, log)
	defer store.Close()

	assessor := newChanceAssessor(ctx, config, log)
	api := server.New(store, assessor, log)

	httpServer := &http.Server{
		Addr:              config.Listen,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("listening", zap.String("address", config.Listen))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	zapLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return zapLogger
}

// openCatalog opens the catalog store and seeds the embedded default
// catalog when the store is empty, so a fresh install serves data
// immediately.
func openCatalog(config *Config, log *zap.Logger) *catalog.Store {
	store, err := catalog.Open(config.Database)
	if err != nil {
		log.Fatal("opening catalog", zap.Error(err))
	}

	awards, err := store.List()
	if err != nil {
		log.Fatal("reading catalog", zap.Error(err))
	}

	if awards.Len() == 0 {
		defaults, err := catalog.DefaultAwards()
		if err != nil {
			log.Fatal("loading embedded awards", zap.Error(err))
		}
		if err := store.Seed(defaults); err != nil {
			log.Fatal("seeding catalog", zap.Error(err))
		}
		log.Info("seeded catalog with embedded awards", zap.Int("count", len(defaults)))
	} else {
		log.Info("catalog loaded", zap.Int("count", awards.Len()))
	}

	return store
}
