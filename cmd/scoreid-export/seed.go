// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scoreid-export/internal/docstore"
	"github.com/pdiddy/scoreid-export/pkg/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.yaml>",
	Short: "Load fixture documents into the configured store",
	Long: `Seed reads a YAML list of documents and inserts them into the store
selected by --driver (mongo or sqlite). It is meant for preparing local
databases and test data; the yaml driver is read-only.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := resolveConfig()

	items, err := docstore.ReadFixture(args[0])
	if err != nil {
		return err
	}
	docs := make([]types.Document, 0, len(items))
	for i, item := range items {
		doc, err := docstore.FixtureDocument(item, i)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	src, err := docstore.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer src.Close(ctx)

	ins, ok := src.(docstore.Inserter)
	if !ok {
		return fmt.Errorf("%s store: %w", cfg.Store.Driver, docstore.ErrReadOnly)
	}
	n, err := ins.Insert(ctx, docs)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d documents inserted\n", n)
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
