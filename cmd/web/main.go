package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qed-tools/fabric-atlas/pkg/server"
	"github.com/qed-tools/fabric-atlas/pkg/services/config"
	"github.com/qed-tools/fabric-atlas/pkg/store/duckdb"
	"github.com/qed-tools/fabric-atlas/pkg/store/duckdb/runs"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the run history server for Fabric Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the master configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", cfgPath, err)
	}

	ledgerPath := cfg.Paths.Ledger
	if ledgerPath == "" {
		ledgerPath = "fabric-atlas.db"
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ledgerPath})
	if err != nil {
		return fmt.Errorf("failed to open run ledger: %w", err)
	}
	defer db.Close()

	history, err := runs.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Run ledger at `%s`.", ledgerPath)

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			History: history,
			Logger:  logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}
