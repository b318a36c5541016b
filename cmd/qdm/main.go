// Command qdm analyzes Vicon "Trajectories" CSV exports: it loads each record
// file, resolves the configured marker tokens to coordinate columns, computes
// the Quantity of Motion per marker, and writes results to the configured
// storage backend, metrics sink and HTML report.
//
// Usage:
//
//	qdm [flags] <record.csv|glob>...
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/quantmotion/qdm/internal/api"
	"github.com/quantmotion/qdm/internal/config"
	"github.com/quantmotion/qdm/internal/influx"
	"github.com/quantmotion/qdm/internal/logging"
	"github.com/quantmotion/qdm/internal/model/core"
	"github.com/quantmotion/qdm/internal/report"
	"github.com/quantmotion/qdm/internal/storage"
	"github.com/quantmotion/qdm/internal/worker"
)

var (
	configDir   = flag.String("config", ".", "directory containing qdm.cfg.json")
	markersFlag = flag.String("markers", "", "comma-separated marker tokens (overrides config)")
	concurrency = flag.Int("concurrency", 0, "concurrent files (0 uses the config value)")
	reportPath  = flag.String("report", "", "report output path (overrides config)")
	noReport    = flag.Bool("no-report", false, "skip HTML report generation")
	doUpload    = flag.Bool("upload", false, "upload exported results to the configured server")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: qdm [flags] <record.csv|glob>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := config.Load(*configDir); err != nil {
		// defaults still apply; a missing config file is fine for one-off runs
		fmt.Fprintf(os.Stderr, "config: %v (continuing with defaults)\n", err)
	}

	sessionStart := time.Now()
	logsDir := config.GetString("logsDir")
	var logFile *os.File
	if err := os.MkdirAll(logsDir, 0755); err == nil {
		logFile, _ = os.Create(logging.LogFilePath(logsDir, "qdm", sessionStart))
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var extra []slog.Handler
	if config.GetBool("graylog.enabled") {
		h, err := logging.NewGraylogHandler(config.GetString("graylog.address"), config.GetString("logLevel"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "graylog: %v (sink disabled)\n", err)
		} else {
			extra = append(extra, h)
		}
	}

	slogMgr := logging.NewSlogManager()
	var fileWriter io.Writer
	if logFile != nil {
		fileWriter = logFile
	}
	slogMgr.Setup(fileWriter, config.GetString("logLevel"), extra...)
	logger := slogMgr.Logger()
	zlog := logging.NewZerolog(fileWriter, config.GetString("logLevel"))

	tokens := config.GetStringSlice("markers")
	if *markersFlag != "" {
		tokens = splitTokens(*markersFlag)
	}
	if len(tokens) == 0 {
		logger.Error(`No marker tokens configured; set "markers" in the config or pass -markers`)
		os.Exit(2)
	}

	paths, err := expandArgs(flag.Args())
	if err != nil {
		logger.Error("Bad file arguments", "error", err)
		os.Exit(2)
	}

	backend, err := storage.NewBackend(config.Storage(), zlog)
	if err != nil {
		logger.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	if err := backend.Init(); err != nil {
		logger.Error("Failed to initialize storage backend", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	var influxMgr *influx.Manager
	if config.GetBool("influx.enabled") {
		influxMgr = influx.NewManager(zlog, filepath.Join(logsDir, "influx_backup.gz"))
		if err := influxMgr.Connect(); err != nil {
			logger.Warn("InfluxDB sink disabled", "error", err)
			influxMgr = nil
		} else {
			defer influxMgr.Close()
		}
	}

	workers := *concurrency
	if workers == 0 {
		workers = config.GetInt("analysis.concurrency")
	}

	runner, err := worker.NewRunner(worker.Dependencies{
		Logger:  logger,
		Backend: backend,
		Influx:  influxMgr,
	}, tokens, workers)
	if err != nil {
		logger.Error("Failed to create runner", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := runner.Run(ctx, paths)
	results := collector.Results()

	printSummary(results)

	if !*noReport && config.GetBool("report.enabled") {
		out := *reportPath
		if out == "" {
			out = config.GetString("report.outputPath")
		}
		if err := report.Render(results, out); err != nil {
			logger.Warn("Report not written", "error", err)
		} else {
			logger.Info("Report written", "path", out)
		}
	}

	if *doUpload {
		uploadResults(logger, backend, results)
	}

	if failed := collector.Failed(); len(failed) == len(results) && len(results) > 0 {
		os.Exit(1)
	}
}

// expandArgs resolves each argument as a glob pattern; arguments without
// metacharacters pass through so missing files surface as load errors.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func splitTokens(s string) []string {
	var tokens []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// printSummary writes the per-marker distances to stdout.
func printSummary(results []worker.TrialResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tMARKER\tDISTANCE\tSTEPS")
	for _, res := range results {
		base := filepath.Base(res.Trial.SourcePath)
		if res.Err != nil {
			fmt.Fprintf(w, "%s\t-\tload failed: %v\t-\n", base, res.Err)
			continue
		}
		for _, mm := range res.Motions {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\n", base, mm.Marker, mm.Distance, mm.Steps)
		}
	}
	w.Flush()
}

// uploadResults pushes exported files to the results server when the backend
// produces any.
func uploadResults(logger *slog.Logger, backend storage.Backend, results []worker.TrialResult) {
	up, ok := backend.(storage.Uploadable)
	if !ok {
		logger.Warn("Storage backend does not export files; nothing to upload")
		return
	}

	client := api.New(config.GetString("api.serverUrl"), config.GetString("api.apiKey"))
	if err := client.Healthcheck(); err != nil {
		logger.Error("Results server unreachable", "error", err)
		return
	}

	for _, path := range up.ExportedFiles() {
		trial := matchTrial(results, path)
		if err := client.Upload(path, trial); err != nil {
			logger.Error("Upload failed", "path", path, "error", err)
			continue
		}
		logger.Info("Uploaded results", "path", path)
	}
}

// matchTrial finds the trial whose source file produced the given export.
func matchTrial(results []worker.TrialResult, exportPath string) (trial core.Trial) {
	base := filepath.Base(exportPath)
	for _, res := range results {
		src := filepath.Base(res.Trial.SourcePath)
		stem := strings.TrimSuffix(src, filepath.Ext(src))
		if stem != "" && strings.HasPrefix(base, stem) {
			return res.Trial
		}
	}
	return trial
}
