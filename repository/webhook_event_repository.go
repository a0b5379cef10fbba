package repository

import (
	"context"

	"storefront-service/models"

	"gorm.io/gorm"
)

// WebhookEventStore records every verified gateway notification and its
// processing outcome for manual reconciliation.
type WebhookEventStore interface {
	Record(ctx context.Context, event *models.WebhookEvent) error
	UpdateStatus(ctx context.Context, id uint, status, errMsg string) error
}

type GormWebhookEventRepository struct {
	db *gorm.DB
}

func NewGormWebhookEventRepository(db *gorm.DB) *GormWebhookEventRepository {
	return &GormWebhookEventRepository{db: db}
}

func (r *GormWebhookEventRepository) Record(ctx context.Context, event *models.WebhookEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormWebhookEventRepository) UpdateStatus(ctx context.Context, id uint, status, errMsg string) error {
	return r.db.WithContext(ctx).Model(&models.WebhookEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": status,
			"error":  errMsg,
		}).Error
}
