package cron

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/htz-portal/portal-api/cache"
	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/logger"
	"github.com/htz-portal/portal-api/models"
)

// StartCronJobs starts the scheduler that publishes scheduled content.
func StartCronJobs() {
	c := cron.New()
	// Run every minute to publish content whose publish_at has passed
	_, err := c.AddFunc("* * * * *", publishScheduledContent)
	if err != nil {
		logger.L.Fatalw("failed to add cron job", "error", err)
	}
	c.Start()
	logger.L.Info("cron scheduler started for scheduled publishing")
}

// publishScheduledContent flips due drafts to published and drops the
// affected public caches.
func publishScheduledContent() {
	now := time.Now()

	newsResult := db.DB.Model(&models.News{}).
		Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?", models.StatusDraft, now).
		Update("status", models.StatusPublished)
	if newsResult.Error != nil {
		logger.L.Errorw("failed to publish scheduled news", "error", newsResult.Error)
	} else if newsResult.RowsAffected > 0 {
		logger.L.Infow("published scheduled news", "count", newsResult.RowsAffected)
		cache.InvalidateNews()
	}

	eventResult := db.DB.Model(&models.Event{}).
		Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?", models.StatusDraft, now).
		Update("status", models.StatusPublished)
	if eventResult.Error != nil {
		logger.L.Errorw("failed to publish scheduled events", "error", eventResult.Error)
	} else if eventResult.RowsAffected > 0 {
		logger.L.Infow("published scheduled events", "count", eventResult.RowsAffected)
		cache.InvalidateEvents()
	}
}
