package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recipelift/backend/config"
	"github.com/recipelift/backend/internal/infrastructure/fetch"
	"github.com/recipelift/backend/internal/reference"
	"github.com/recipelift/backend/internal/usecase"
)

// app carries what the commands share. The import service is built from
// configuration on first use unless one is already set.
type app struct {
	logger   *zap.Logger
	importer *usecase.ImportService
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "importer",
		Short: "importer turns recipe web pages into reviewable drafts",
		Long: `importer fetches a recipe page, extracts its name, ingredients and
instructions, matches ingredients against the food catalog and prints the
draft as JSON.

Usage:
  importer import <url>
  importer normalize <ingredient>...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.AddCommand(newImportCmd(a))
	root.AddCommand(newNormalizeCmd(a))
	return root
}

func (a *app) init() error {
	if a.importer != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logger == nil {
		if a.logger, err = config.NewLogger(cfg.Log); err != nil {
			return err
		}
	}

	fetcher := fetch.NewClient(fetch.Config{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           cfg.Fetch.Timeout,
		MaxBodyBytes:      cfg.Fetch.MaxBodyBytes,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		Burst:             cfg.Fetch.Burst,
	}, a.logger)

	// One-shot runs have nothing to reuse a cache for
	a.importer = usecase.NewImportService(nil, fetcher, reference.Load(), a.logger, usecase.ImportServiceConfig{
		Match: usecase.MatchConfig{
			EnableFuzzyMatching: cfg.Matching.EnableFuzzyMatching,
			FuzzyEditDistance:   cfg.Matching.FuzzyEditDistance,
			EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
		},
	})
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
