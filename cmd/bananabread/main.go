package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vbonduro/bananabread/internal/assistant"
	"github.com/vbonduro/bananabread/internal/assistant/proxy"
	"github.com/vbonduro/bananabread/internal/checklist"
	"github.com/vbonduro/bananabread/internal/config"
	"github.com/vbonduro/bananabread/internal/db"
	"github.com/vbonduro/bananabread/internal/logging"
	"github.com/vbonduro/bananabread/internal/store"
)

func main() {
	cfg := config.LoadClient()

	logger, cleanup, err := logging.New(cfg.LogLevel, "text", cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stateStore, closeStore := newStateStore(cfg, logger)
	defer closeStore()

	cache := checklist.NewCache(stateStore)
	sess := newSession(
		checklist.NewTracker(ctx, cache, checklist.IngredientsKey, logger),
		checklist.NewTracker(ctx, cache, checklist.StepsKey, logger),
		assistant.New(proxy.New(cfg.ProxyURL, logger)),
		os.Stdout,
	)

	if err := sess.run(ctx, os.Stdin); err != nil {
		logger.Error("session ended", "error", err)
	}
}

// newStateStore opens the checklist cache. A sqlite failure falls back to
// memory so the checklist stays usable.
func newStateStore(cfg *config.Client, logger *slog.Logger) (checklist.Store, func()) {
	if cfg.StateBackend == "memory" {
		return store.NewMemoryStore(), func() {}
	}

	database, err := db.Open(cfg.StateDBPath)
	if err != nil {
		logger.Error("failed to open state database, progress will not be saved", "path", cfg.StateDBPath, "error", err)
		return store.NewMemoryStore(), func() {}
	}
	return store.NewKVStore(database), func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
}
