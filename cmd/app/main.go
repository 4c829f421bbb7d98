package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"itch_go/internal/app"
	"itch_go/internal/engine"
	"itch_go/internal/infra"
	"itch_go/internal/itch"
	"itch_go/internal/service"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", infra.DefaultConfigPath, "config file path")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage:")
		fmt.Println("\titchgo [-config config.yaml] <unzipped NASDAQ ITCH 5.0 file>")
		fmt.Println("\tExample: itchgo 01302019.NASDAQ_ITCH50")
		os.Exit(1)
	}
	capturePath := flag.Arg(0)

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrapping failed: %v\n", err)
		os.Exit(1)
	}
	defer bootstrap.Shutdown()
	cfg := bootstrap.Config

	// 2. Pprof Server (for performance profiling)
	if cfg.Profiling.Enabled {
		go func() {
			// Localhost only for security
			slog.Info("🕵️ Pprof server started", slog.String("addr", cfg.Profiling.Addr))
			if err := http.ListenAndServe(cfg.Profiling.Addr, nil); err != nil {
				slog.Error("Pprof server failed", slog.Any("error", err))
			}
		}()
	}

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Map the capture. The only fatal error in the pipeline.
	reader, err := itch.OpenFile(capturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer reader.Close()
	slog.Info("capture mapped", slog.String("path", capturePath), slog.Int64("bytes", reader.Size()))

	// 5. Wire the replay (The Hotpath Loop)
	reporter := engine.NewReporter(cfg.Report.Dir, os.Stdout, bootstrap.Storage, bootstrap.Publisher, infra.GlobalMetrics)
	handler := engine.NewMessageHandler(reader, reporter, infra.GlobalMetrics)
	replayer := service.NewReplayer(reader, handler)

	_ = replayer.Run(ctx)

	snap := infra.GlobalMetrics.Snapshot()
	slog.Info("run summary",
		slog.Uint64("messages", snap.MessagesProcessed),
		slog.Uint64("executions", snap.ExecutionsFolded),
		slog.Uint64("construct_failures", snap.ConstructFailures),
		slog.Uint64("reports", snap.ReportsWritten),
		slog.Uint64("errors", snap.ErrorsTotal))
}
