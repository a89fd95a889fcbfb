// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/educonnect/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes the stores rely on, most importantly the
// unique email index and the unique classroom tuple index that back the
// duplicate checks.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensuring indexes", zap.Error(err))
		return err
	}
	logger.Info("database indexes ensured")
	return nil
}
