package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChicagoDave/housingdash/internal/config"
	"github.com/ChicagoDave/housingdash/internal/server"
	"github.com/ChicagoDave/housingdash/pkg/dataset"
	"github.com/ChicagoDave/housingdash/pkg/pipeline"
	"github.com/ChicagoDave/housingdash/pkg/report"
	"github.com/ChicagoDave/housingdash/pkg/synth"
	"github.com/ChicagoDave/housingdash/pkg/validation"
)

// loadConfig reads file and environment configuration, then applies flags.
func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if flags.dataset != "" {
		cfg.Dataset.Path = flags.dataset
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.fromYear != 0 {
		cfg.Generator.FromYear = flags.fromYear
	}
	if flags.toYear != 0 {
		cfg.Generator.ToYear = flags.toYear
	}
	if flags.projects >= 0 {
		cfg.Generator.ProjectCount = flags.projects
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
}

// loadDataset reads a dataset file or project directory, falling back to the
// embedded reference dataset.
func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Default(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	if info.IsDir() {
		return dataset.LoadDir(path)
	}
	return dataset.Load(path)
}

func generatorConfig(ds *dataset.Dataset, cfg config.Config) synth.Config {
	gen := synth.ConfigFromDataset(ds)
	gen.FromYear = cfg.Generator.FromYear
	gen.ToYear = cfg.Generator.ToYear
	gen.ProjectCount = cfg.Generator.ProjectCount
	return gen
}

// setup loads configuration and the dataset, then prepares a report builder.
func setup(flags *globalFlags) (config.Config, *slog.Logger, *report.Builder, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger := newLogger(cfg)

	ds, err := loadDataset(cfg.Dataset.Path)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	builder, err := report.NewBuilder(ds, generatorConfig(ds, cfg), logger)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("preparing report: %w", err)
	}
	return cfg, logger, builder, nil
}

func runValidate(flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg.Dataset.Path)
	if err != nil {
		return err
	}

	schemaReport := validation.ValidateProviders(ds.Providers)
	if !schemaReport.Valid {
		printValidationReport(schemaReport)
		os.Exit(1)
	}

	builder, err := report.NewBuilder(ds, generatorConfig(ds, cfg), newLogger(cfg))
	if err != nil {
		return err
	}
	r, err := builder.Build(nil)
	if err != nil {
		return err
	}

	printValidationReport(r.Validation)

	if !r.Validation.Valid {
		os.Exit(1)
	}
	return nil
}

func runReport(flags *globalFlags, asJSON bool) error {
	_, _, builder, err := setup(flags)
	if err != nil {
		return err
	}
	r, err := builder.Build(nil)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	printReport(r)
	if len(r.Validation.Warnings) > 0 {
		fmt.Println()
		printValidationReport(r.Validation)
	}
	return nil
}

func runProviders(flags *globalFlags, structureType, tier, sortKey string) error {
	_, _, builder, err := setup(flags)
	if err != nil {
		return err
	}
	filter, err := pipeline.ProviderFilter(structureType, tier)
	if err != nil {
		return err
	}
	order, err := pipeline.ParseProviderOrder(sortKey)
	if err != nil {
		return err
	}

	printProviderTable(pipeline.Apply(builder.Store().Load(), filter, order))
	return nil
}

func runProvider(flags *globalFlags, name string) error {
	_, _, builder, err := setup(flags)
	if err != nil {
		return err
	}
	r, err := builder.Build(nil)
	if err != nil {
		return err
	}
	sheet, err := r.ProviderSheet(name)
	if err != nil {
		return err
	}
	printSheet(sheet)
	return nil
}

func runServe(flags *globalFlags, host string, port int, portSet bool) error {
	cfg, logger, builder, err := setup(flags)
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if portSet {
		cfg.Server.Port = port
	}

	srv, err := server.New(builder, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Server.Addr())
}
