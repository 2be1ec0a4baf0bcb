package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shelfwatch/internal/models"
	"shelfwatch/internal/storage"
)

// Schedule is the daily trigger for the expiry scan, in the configured time zone
const Schedule = "0 5 * * *"

// Notifier delivers reminder messages to product owners. The bot implements
// it; tests substitute a recorder.
type Notifier interface {
	SendProductPhoto(chatID int64, photoFileID, caption string) error
	SendText(chatID int64, text string) error
}

// Job is the daily expiry scan: it notifies owners of products expiring today
// or hitting their return deadline today, then prunes rows that expired the
// previous day.
type Job struct {
	db       storage.Storage
	notifier Notifier
	logger   *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewJob creates a reminder job
func NewJob(db storage.Storage, notifier Notifier, loc *time.Location, logger *zap.Logger) *Job {
	return &Job{
		db:       db,
		notifier: notifier,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
	}
}

// Run executes one scan. Delivery failures are logged per product and never
// abort the rest of the run; pruning happens regardless of delivery outcomes.
func (j *Job) Run(ctx context.Context) {
	today := models.DateOnly(j.now().In(j.loc))

	expiring, err := j.db.FindExpiringOn(ctx, today)
	if err != nil {
		j.logger.Error("Failed to query products expiring today", zap.Error(err))
	}

	returnTarget := today.AddDate(0, 0, models.ReturnWindowDays)
	returnable, err := j.db.FindReturnableExpiringOn(ctx, returnTarget)
	if err != nil {
		j.logger.Error("Failed to query returnable products", zap.Error(err))
	}

	// One notification per product even if it matches both predicates
	seen := make(map[int64]bool)
	for _, p := range append(expiring, returnable...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		j.notify(p)
	}

	yesterday := today.AddDate(0, 0, -1)
	deleted, err := j.db.DeleteExpiredOn(ctx, yesterday)
	if err != nil {
		j.logger.Error("Failed to delete expired products", zap.Error(err))
		return
	}
	j.logger.Info("Deleted expired products",
		zap.Int64("count", deleted),
		zap.String("expiration_date", yesterday.Format(models.DateLayout)),
	)
}

func (j *Job) notify(p models.Product) {
	err := j.notifier.SendProductPhoto(p.OwnerID, p.PhotoFileID,
		"Reminder! This product's shelf life ends today!")
	if err != nil {
		j.logger.Error("Failed to send expiry reminder",
			zap.Int64("product_id", p.ID),
			zap.Int64("owner_id", p.OwnerID),
			zap.Error(err),
		)
		return
	}

	if p.Returnable {
		err := j.notifier.SendText(p.OwnerID,
			"This product is in the returnable category. Don't forget to return it!")
		if err != nil {
			j.logger.Error("Failed to send return reminder",
				zap.Int64("product_id", p.ID),
				zap.Int64("owner_id", p.OwnerID),
				zap.Error(err),
			)
		}
	}
}
