// Command timetable-solver is the CLI host around internal/solver: it wires
// configuration, the store snapshot reader, the optional cache and debug
// HTTP server, runs the search, and renders the result.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/fhw-wedel/timetable-solver/internal/format"
	"github.com/fhw-wedel/timetable-solver/internal/httpserver"
	"github.com/fhw-wedel/timetable-solver/internal/loader"
	"github.com/fhw-wedel/timetable-solver/internal/metrics"
	"github.com/fhw-wedel/timetable-solver/internal/snapshot"
	"github.com/fhw-wedel/timetable-solver/internal/solver"
	"github.com/fhw-wedel/timetable-solver/pkg/cache"
	"github.com/fhw-wedel/timetable-solver/pkg/config"
	"github.com/fhw-wedel/timetable-solver/pkg/database"
	apperrors "github.com/fhw-wedel/timetable-solver/pkg/errors"
	"github.com/fhw-wedel/timetable-solver/pkg/logger"
	"github.com/fhw-wedel/timetable-solver/pkg/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	flags := parseFlags()

	solverCfg := solver.DefaultConfig()
	solverCfg.NumGenerations = flags.generations
	if err := solverCfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		return 1
	}
	defer zapLogger.Sync() //nolint:errcheck

	runID := uuid.NewString()
	log := zapLogger.With(zap.String("run_id", runID)).Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsSink := metrics.NewSolverMetrics()

	if flags.debugMode {
		engine := httpserver.New(metricsSink, zapLogger)
		go httpserver.Run(ctx, engine, cfg.Debug.MetricsAddr, zapLogger)
		log.Infow("debug http server started", "addr", cfg.Debug.MetricsAddr)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		appErr := apperrors.FromError(err)
		log.Errorw("failed to connect to store", "error", appErr)
		return 1
	}
	defer db.Close()

	var bytesCache cache.BytesCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			bytesCache = &cache.RedisBytesCache{Client: redisClient}
		}
	}

	reader := snapshot.NewPostgresReader(db)
	result, err := loader.Load(ctx, flags.term, reader, bytesCache, int(cfg.Redis.TTL.Seconds()))
	if err != nil {
		appErr := apperrors.FromError(err)
		log.Errorw("failed to load problem", "error", appErr, "code", appErr.Code)
		return 1
	}
	log.Infow("problem loaded", "blocks", len(result.Problem.Blocks), "slots", len(result.Problem.Slots))

	outcome, err := solver.Run(ctx, result.Problem, solverCfg, metricsSink)
	if err != nil {
		appErr := apperrors.FromError(err)
		log.Errorw("search failed", "error", appErr, "code", appErr.Code)
		return 1
	}
	log.Infow("search finished",
		"penalty", outcome.Penalty,
		"generations", outcome.Generations,
		"reason", outcome.Reason,
		"duration", outcome.Duration,
	)

	if err := renderOutcome(cfg, flags, result, outcome, log); err != nil {
		log.Errorw("failed to render output", "error", err)
		return 1
	}

	return 0
}

type cliFlags struct {
	generations  int
	term         loader.Term
	printTabular bool
	debugMode    bool
	exportKinds  []string
}

func parseFlags() cliFlags {
	generations := pflag.IntP("generations", "g", solver.DefaultConfig().NumGenerations, "number of generations")
	summer := pflag.BoolP("summer", "s", true, "use the Sommer term (default)")
	winter := pflag.BoolP("winter", "w", false, "use the Winter term (overrides --summer)")
	printTabular := pflag.BoolP("print-tabular", "t", true, "print the result as a tabular table")
	debugMode := pflag.BoolP("debug_mode", "d", false, "emit the table to stdout and start the debug HTTP server")
	export := pflag.String("export", "", "comma-separated additional export formats: csv,pdf")
	pflag.Parse()

	term := loader.TermSommer
	if *winter {
		term = loader.TermWinter
	}
	_ = summer

	var exportKinds []string
	if *export != "" {
		exportKinds = strings.Split(*export, ",")
	}

	return cliFlags{
		generations:  *generations,
		term:         term,
		printTabular: *printTabular,
		debugMode:    *debugMode,
		exportKinds:  exportKinds,
	}
}

func renderOutcome(cfg *config.Config, flags cliFlags, result *loader.Result, outcome solver.Outcome, log *zap.SugaredLogger) error {
	rows := format.BuildRows(result, outcome)
	dataset := format.Dataset(rows)

	localStorage, err := storage.NewLocalStorage(cfg.Debug.ExportDir)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s %d", flags.term, time.Now().Year())

	if flags.printTabular {
		tabular := format.RenderTabular(title, dataset)
		if flags.debugMode {
			fmt.Println(string(tabular))
		}
		path, err := localStorage.Save("timetable.txt", tabular)
		if err != nil {
			return err
		}
		log.Infow("tabular timetable written", "path", localStorage.Path(path))
	}

	for _, kind := range flags.exportKinds {
		switch strings.TrimSpace(kind) {
		case "csv":
			if err := exportCSV(localStorage, dataset); err != nil {
				return err
			}
		case "pdf":
			if err := exportPDF(localStorage, dataset, title); err != nil {
				return err
			}
		}
	}

	return nil
}
