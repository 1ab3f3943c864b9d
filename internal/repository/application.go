package repository

import (
	"context"
	"time"

	"github.com/linskybing/engagement-go/internal/domain/offer"
	"gorm.io/gorm"
)

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *offer.Application) error
	GetApplicationByID(ctx context.Context, id uint) (offer.Application, error)
	ApplicationExists(ctx context.Context, campaignID, providerID uint) (bool, error)
	DecideApplication(ctx context.Context, id uint, status offer.Status, at time.Time) (bool, error)
	ListApplicationsByCampaign(ctx context.Context, campaignID uint) ([]offer.Application, error)
	ListApplicationViewsByProvider(ctx context.Context, providerID uint) ([]offer.ApplicationView, error)
	ListApplicationViewsByRequester(ctx context.Context, requesterID uint) ([]offer.ApplicationView, error)
	WithTx(tx *gorm.DB) ApplicationRepo
}

type DBApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *DBApplicationRepo {
	return &DBApplicationRepo{
		db: db,
	}
}

func (r *DBApplicationRepo) CreateApplication(ctx context.Context, a *offer.Application) error {
	err := r.db.WithContext(ctx).Create(a).Error
	return translate(err, "application of provider %d to campaign %d", a.ProviderID, a.CampaignID)
}

func (r *DBApplicationRepo) GetApplicationByID(ctx context.Context, id uint) (offer.Application, error) {
	var a offer.Application
	err := r.db.WithContext(ctx).First(&a, id).Error
	return a, translate(err, "application %d", id)
}

func (r *DBApplicationRepo) ApplicationExists(ctx context.Context, campaignID, providerID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&offer.Application{}).
		Where("campaign_id = ? AND provider_id = ?", campaignID, providerID).
		Count(&n).Error
	return n > 0, translate(err, "lookup application")
}

// DecideApplication moves a pending application to status. It reports false
// when the application was no longer pending.
func (r *DBApplicationRepo) DecideApplication(ctx context.Context, id uint, status offer.Status, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&offer.Application{}).
		Where("id = ? AND status = ?", id, offer.StatusPending).
		Updates(map[string]any{"status": status, "decided_at": at})
	if res.Error != nil {
		return false, translate(res.Error, "decide application %d", id)
	}
	return res.RowsAffected == 1, nil
}

func (r *DBApplicationRepo) ListApplicationsByCampaign(ctx context.Context, campaignID uint) ([]offer.Application, error) {
	var apps []offer.Application
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, translate(err, "list applications of campaign %d", campaignID)
}

func (r *DBApplicationRepo) ListApplicationViewsByProvider(ctx context.Context, providerID uint) ([]offer.ApplicationView, error) {
	var views []offer.ApplicationView
	err := r.viewQuery(ctx).
		Where("a.provider_id = ?", providerID).
		Scan(&views).Error
	return views, translate(err, "list applications of provider %d", providerID)
}

func (r *DBApplicationRepo) ListApplicationViewsByRequester(ctx context.Context, requesterID uint) ([]offer.ApplicationView, error) {
	var views []offer.ApplicationView
	err := r.viewQuery(ctx).
		Where("c.requester_id = ?", requesterID).
		Scan(&views).Error
	return views, translate(err, "list applications for requester %d", requesterID)
}

func (r *DBApplicationRepo) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("applications a").
		Select(`
            a.id, a.campaign_id, c.title AS campaign_title,
            c.requester_id, a.provider_id, a.status, a.created_at
        `).
		Joins("JOIN campaigns c ON c.id = a.campaign_id").
		Order("a.created_at DESC")
}

func (r *DBApplicationRepo) WithTx(tx *gorm.DB) ApplicationRepo {
	if tx == nil {
		return r
	}
	return &DBApplicationRepo{
		db: tx,
	}
}
