package app

import (
	"log/slog"

	"itch_go/internal/infra"
	"itch_go/internal/infra/monitor"
	"itch_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config    *infra.Config
	Storage   *storage.Storage
	Publisher *monitor.Publisher
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logging, optional
// archive and monitor).
func (b *Bootstrap) Initialize(configPath string) error {
	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("🚀 Bootstrapping ItchGo", slog.String("app", cfg.App.Name))

	// 3. Optional VWAP archive
	if cfg.Archive.Enabled {
		store, err := storage.NewStorage(cfg.Archive.Path)
		if err != nil {
			return err
		}
		b.Storage = store
		slog.Info("✅ Archive initialized", slog.String("path", cfg.Archive.Path))
	}

	// 4. Optional snapshot publisher (connects lazily on first report)
	if cfg.Monitor.Enabled {
		b.Publisher = monitor.NewPublisher(cfg.Monitor.URL, cfg.Monitor.HandshakeTimeoutMS)
		slog.Info("✅ Monitor publisher ready", slog.String("url", cfg.Monitor.URL))
	}

	return nil
}

// Shutdown releases bootstrap-owned resources.
func (b *Bootstrap) Shutdown() {
	if b.Publisher != nil {
		_ = b.Publisher.Close()
	}
}
