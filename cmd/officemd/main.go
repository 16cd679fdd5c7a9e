// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the officemd CLI. The root command
// converts a directory tree of Office documents to Markdown; subcommands
// expose the run ledger and version information.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/officemd/internal/caption"
	"github.com/pdiddy/officemd/internal/container"
	"github.com/pdiddy/officemd/internal/convert"
	"github.com/pdiddy/officemd/internal/discover"
	"github.com/pdiddy/officemd/internal/history"
	"github.com/pdiddy/officemd/internal/logging"
	"github.com/pdiddy/officemd/internal/report"
	"github.com/pdiddy/officemd/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// exitInterrupted is the conventional status for a run ended by SIGINT.
const exitInterrupted = 130

var rootCmd = &cobra.Command{
	Use:   "officemd",
	Short: "Convert Office documents to normalized Markdown",
	Long: `officemd walks a directory tree, converts every matching Office document
into a Markdown sibling file, and folds typographic Unicode punctuation into
plain ASCII. With an OpenAI credential in the environment, embedded images
are described by a vision model and the captions woven into the output.

Conversion runs through the markitdown container image; docker or podman
must be installed with the image available locally. Set OPENAI_API_KEY to
enable image descriptions and OPENAI_MODEL to override the default model.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./officemd.yaml or ~/.config/officemd/config.yaml)")

	rootCmd.Flags().StringP("directory", "d", ".", "directory tree to search for documents")
	rootCmd.Flags().StringSliceP("extensions", "e", []string{".docx", ".pptx"}, "file extensions to convert")
	rootCmd.Flags().Bool("skip-images", false, "disable image descriptions")
	rootCmd.Flags().String("log-file", "", "error log path (default: conversion_errors.log in the working directory)")
	rootCmd.Flags().String("report", "", "YAML run report path (default: conversion-report.yaml in the directory)")
	rootCmd.Flags().String("history-db", "", "run ledger path (default: ~/.officemd/history.db)")
	rootCmd.Flags().Bool("no-history", false, "do not record this run in the ledger")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("officemd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "officemd"))
		}
	}

	viper.SetEnvPrefix("OFFICEMD")
	viper.AutomaticEnv()

	// The captioning credentials keep their conventional unprefixed names.
	_ = viper.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = viper.BindEnv("openai_model", "OPENAI_MODEL")
	viper.SetDefault("openai_model", types.DefaultModel)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, cfg, os.Stdout, os.Stderr)
}

// buildConfig assembles the run configuration from flags and environment.
// It is read once here and never re-read during the run.
func buildConfig(cmd *cobra.Command) (types.Config, error) {
	dir, _ := cmd.Flags().GetString("directory")
	exts, _ := cmd.Flags().GetStringSlice("extensions")
	skipImages, _ := cmd.Flags().GetBool("skip-images")
	logFile, _ := cmd.Flags().GetString("log-file")
	reportPath, _ := cmd.Flags().GetString("report")
	historyDB, _ := cmd.Flags().GetString("history-db")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	root, err := filepath.Abs(dir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving directory %s: %w", dir, err)
	}

	cfg := types.Config{
		Root:       root,
		Extensions: discover.NormalizeExtensions(exts),
		Caption: types.CaptionConfig{
			Enabled: !skipImages,
			APIKey:  viper.GetString("openai_api_key"),
			Model:   viper.GetString("openai_model"),
		},
		LogFile:    logFile,
		ReportPath: reportPath,
		HistoryDB:  historyDB,
		NoHistory:  noHistory,
	}
	if cfg.LogFile == "" {
		cfg.LogFile = logging.DefaultFileName
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = filepath.Join(root, report.DefaultName)
	}
	return cfg, nil
}

// run opens the error log and drives the batch through convertTree,
// recording any fatal cause or interrupt in the log before it surfaces to
// the caller. errOut receives the console mirror of the log stream.
func run(ctx context.Context, cfg types.Config, out, errOut io.Writer) error {
	log, err := logging.Open(cfg.LogFile, errOut)
	if err != nil {
		return err
	}
	defer log.Close()

	err = convertTree(ctx, cfg, log, out)
	switch {
	case errors.Is(err, context.Canceled):
		log.Warn("conversion interrupted")
	case err != nil:
		log.Error("run failed", "error", err)
	}
	return err
}

// convertTree executes one conversion batch end to end: discovery,
// conversion, summary, and the advisory report and ledger writes.
func convertTree(ctx context.Context, cfg types.Config, log *logging.Log, out io.Writer) error {
	startedAt := time.Now().UTC()

	files, err := discover.Find(cfg.Root, cfg.Extensions, log.Logger)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		log.Warn("no matching documents found", "root", cfg.Root, "extensions", cfg.Extensions)
		return nil
	}
	log.Info("starting conversion", "root", cfg.Root, "extensions", cfg.Extensions, "documents", len(files))

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	engine, err := convert.NewMarkitdownEngine(rt)
	if err != nil {
		return err
	}

	runner := &convert.Runner{
		Converter: &convert.Converter{
			Engine:    engine,
			Describer: setupDescriber(cfg.Caption, log),
		},
		Log: log.Logger,
		Out: out,
	}

	runReport, runErr := runner.Run(ctx, files)
	if runErr != nil {
		return runErr
	}

	runReport.ID = uuid.NewString()
	runReport.Root = cfg.Root
	runReport.Extensions = cfg.Extensions
	runReport.StartedAt = startedAt
	runReport.FinishedAt = time.Now().UTC()

	log.Info("conversion finished", "run", runReport.ID,
		"total", runReport.Total, "succeeded", runReport.Succeeded, "failed", runReport.Failed)

	if err := report.Write(cfg.ReportPath, &runReport); err != nil {
		log.Warn("run report not written", "error", err)
	}
	if !cfg.NoHistory {
		saveHistory(ctx, cfg.HistoryDB, &runReport, log)
	}

	printSummary(out, &runReport, log.Path())
	return nil
}

// setupDescriber builds the captioning client, degrading to nil (captions
// disabled) with a warning when the configuration cannot support one.
func setupDescriber(cfg types.CaptionConfig, log *logging.Log) convert.Describer {
	if !cfg.Enabled {
		log.Info("image descriptions disabled")
		return nil
	}
	client, err := caption.New(cfg.APIKey, cfg.Model)
	if err != nil {
		if errors.Is(err, caption.ErrNoCredential) {
			log.Warn("captioning disabled: set OPENAI_API_KEY to enable image descriptions")
		} else {
			log.Warn("captioning disabled", "error", err)
		}
		return nil
	}
	log.Info("captioning enabled", "model", client.Model)
	return client
}

// saveHistory records the run in the SQLite ledger. Ledger problems never
// fail the run.
func saveHistory(ctx context.Context, dbPath string, run *types.RunReport, log *logging.Log) {
	if dbPath == "" {
		var err error
		dbPath, err = history.DefaultPath()
		if err != nil {
			log.Warn("history ledger skipped", "error", err)
			return
		}
	}

	store, err := history.Open(dbPath)
	if err != nil {
		log.Warn("history ledger skipped", "error", err)
		return
	}
	defer store.Close()

	if err := store.SaveRun(ctx, run); err != nil {
		log.Warn("history ledger not updated", "error", err)
	}
}

func printSummary(w io.Writer, run *types.RunReport, logPath string) {
	fmt.Fprintf(w, "\nConversion complete: %d total, %d succeeded, %d failed\n",
		run.Total, run.Succeeded, run.Failed)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Finished: %s\n", run.FinishedAt.Format(time.RFC3339))
	if run.HasFailures() {
		fmt.Fprintln(w, "Failed documents:")
		for _, d := range run.FailedDocuments() {
			fmt.Fprintf(w, "  %s\n", d.Path)
		}
		fmt.Fprintf(w, "See %s for failure details\n", logPath)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
