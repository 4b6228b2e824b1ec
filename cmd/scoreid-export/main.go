// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scoreid-export CLI.
// Running it without a subcommand performs one export: every document in
// the api_cache collection whose status_response_json.result.status is 1
// contributes its score_id to score_ids.csv.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/scoreid-export/internal/extract"
	"github.com/pdiddy/scoreid-export/internal/logging"
	"github.com/pdiddy/scoreid-export/internal/secrets"
	"github.com/pdiddy/scoreid-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd runs the export when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "scoreid-export",
	Short: "Export score IDs of status-checked documents to CSV",
	Long: `scoreid-export reads the api_cache collection, selects every document whose
status_response_json.result.status equals 1, and writes the score_id of each
one to score_ids.csv in the current directory.

The raw matching documents are printed as they are read, followed by any
per-document errors and a final count. With no flags the tool connects to
mongodb://localhost:27017 and the yasss_om-api_com database.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
	RunE:              runExport,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scoreid-export.yaml or ~/.config/scoreid-export/config.yaml)")
	pf.String("driver", string(types.DriverMongo), "store driver: mongo, sqlite, or yaml")
	pf.String("uri", types.DefaultStoreURI, "MongoDB connection string")
	pf.String("database", types.DefaultDatabase, "MongoDB database")
	pf.String("collection", types.DefaultCollection, "MongoDB collection")
	pf.String("store-path", "", "database file (sqlite) or fixture file (yaml)")
	pf.Bool("no-color", false, "disable colored log output")

	rootCmd.Flags().StringP("output", "o", types.DefaultOutputPath, "output file")
	rootCmd.Flags().String("format", string(types.FormatCSV), "output format: csv, json, or yaml")

	bindFlag("store.driver", pf, "driver")
	bindFlag("store.uri", pf, "uri")
	bindFlag("store.database", pf, "database")
	bindFlag("store.collection", pf, "collection")
	bindFlag("store.path", pf, "store-path")
	bindFlag("log.no_color", pf, "no-color")
	bindFlag("export.path", rootCmd.Flags(), "output")
	bindFlag("export.format", rootCmd.Flags(), "format")
}

func bindFlag(key string, flags *pflag.FlagSet, name string) {
	cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(name)))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scoreid-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scoreid-export"))
		}
	}

	viper.SetEnvPrefix("SCOREID_EXPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadEnvironment reads .env and .secrets/ before any command runs.
// Both are optional.
func loadEnvironment(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	s, err := secrets.Load(secrets.DefaultDir, os.Stderr)
	if err != nil {
		return err
	}
	loadedSecrets = s
	if len(s) > 0 {
		fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
	}
	return nil
}

// resolveConfig merges flags, environment, config file, and secrets.
func resolveConfig() types.Config {
	cfg := types.Config{
		Store: types.StoreConfig{
			Driver:     types.StoreDriver(viper.GetString("store.driver")),
			URI:        viper.GetString("store.uri"),
			Database:   viper.GetString("store.database"),
			Collection: viper.GetString("store.collection"),
			Path:       viper.GetString("store.path"),
			Username:   viper.GetString("store.username"),
			Password:   viper.GetString("store.password"),
		},
		Export: types.ExportConfig{
			Path:   viper.GetString("export.path"),
			Format: types.ExportFormat(viper.GetString("export.format")),
		},
	}
	loadedSecrets.ApplyTo(&cfg.Store)
	return cfg.WithDefaults()
}

func newLogger(w io.Writer) *zap.SugaredLogger {
	return logging.New(w, logging.Options{
		Level:   zapcore.DebugLevel,
		NoColor: viper.GetBool("log.no_color"),
	}).With("run_id", uuid.NewString())
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	log := newLogger(out)
	defer log.Sync()

	_, err := extract.Export(cmd.Context(), resolveConfig(),
		extract.WithLogger(log),
		extract.WithOutput(out),
	)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
