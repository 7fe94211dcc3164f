package main

import (
	"context"
	"time"

	"roomledger/internal/bootstrap"
	"roomledger/pkg/config"
)

const JobName = "expiry-sweeper"

// One expiry pass over the configured store, for running from a scheduler
// when the API's background sweeper is disabled.
func main() {
	cfg := config.Load(JobName)
	defer cfg.GracefulShutdown()

	if cfg.StorageDriver != config.StorageMongo {
		cfg.Log.Fatal("Expiry sweeper requires STORAGE_DRIVER=mongo", "storage_driver", cfg.StorageDriver)
	}
	cfg.SetMongo()
	if cfg.LockBackend == config.LockRedis {
		cfg.SetRedis()
	}

	repos, err := bootstrap.NewRepositories(cfg, nil)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize repositories", "error", err)
	}
	services := bootstrap.NewServices(cfg, repos, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	expired, err := services.Bookings.ExpireOld(ctx)
	if err != nil {
		cfg.Log.Fatal("Expiry sweep job failed", "error", err)
	}
	cfg.Log.Info("Expiry sweep job finished", "expired", expired, "duration_ms", time.Since(start).Milliseconds())
}
