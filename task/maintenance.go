package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/icodeforyou/option-go/config"
	"github.com/icodeforyou/option-go/database"
)

func NewMaintenanceTask(logger *slog.Logger, db *database.Database, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		purged, err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries())
		if err != nil {
			logger.Error("log maintenance error", slog.Any("error", err))
			return
		}

		logger.Info("maintenance task done", slog.Int64("purged", purged))
	}
}
