package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
	"github.com/Tjindl/HackTheCoast-sub000/internal/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the award catalog into the local database",
	Run: func(_ *cobra.Command, _ []string) {
		seed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringP("awards-file", "a", "", "awards JSON file to load (default is the embedded catalog)")
	seedCmd.Flags().String("database", defaultDatabase, "path to the catalog database")

	viper.BindPFlag("awards-file", seedCmd.Flags().Lookup("awards-file"))
	viper.BindPFlag("database", seedCmd.Flags().Lookup("database"))
}

func seed() {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	var awards []*award.Award
	if config.AwardsFile != "" {
		awards, err = catalog.LoadFile(config.AwardsFile)
		if err != nil {
			log.Fatal("loading awards file", zap.String("path", config.AwardsFile), zap.Error(err))
		}
	} else {
		awards, err = catalog.DefaultAwards()
		if err != nil {
			log.Fatal("loading embedded awards", zap.Error(err))
		}
	}

	store, err := catalog.Open(config.Database)
	if err != nil {
		log.Fatal("opening catalog", zap.Error(err))
	}
	defer store.Close()

	if err := store.Seed(awards); err != nil {
		log.Fatal("seeding catalog", zap.Error(err))
	}

	log.Info("seeded award catalog",
		zap.String("database", config.Database),
		zap.Int("count", len(awards)),
	)
}
