package main

import (
	"fmt"
	"os"

	"github.com/briefmate/briefmate/internal/config"
	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "briefmate",
		Short:         "Briefmate - brief and client tracking API for freelancers",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration, sets up logging and opens the database
func bootstrap() (*config.Config, error) {
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
