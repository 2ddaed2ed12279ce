package app

import (
	"context"

	"go.trai.ch/margin/internal/adapters/memory"
	"go.trai.ch/margin/internal/adapters/redis"
	"go.trai.ch/margin/internal/adapters/sqlite"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
	"go.trai.ch/zerr"
)

// OpenRepository opens the annotation repository selected by cfg.
func OpenRepository(ctx context.Context, cfg domain.StorageConfig) (ports.AnnotationRepository, error) {
	switch cfg.Driver {
	case domain.DriverMemory, "":
		return memory.NewRepository(), nil
	case domain.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case domain.DriverRedis:
		repo, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStorageDriver, "cannot open storage"), "driver", cfg.Driver)
	}
}
