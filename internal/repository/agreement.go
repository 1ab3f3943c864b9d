package repository

import (
	"context"
	"time"

	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"gorm.io/gorm"
)

type AgreementRepo interface {
	CreateAgreement(ctx context.Context, a *agreement.Agreement) error
	GetAgreementByID(ctx context.Context, id uint) (agreement.Agreement, error)
	ActiveAgreementExists(ctx context.Context, campaignID, providerID, requesterID uint) (bool, error)
	MarkSettled(ctx context.Context, id uint, at time.Time) (bool, error)
	AgreementBetweenExists(ctx context.Context, userA, userB uint, campaignID *uint) (bool, error)
	CountActiveByCampaign(ctx context.Context, campaignID uint) (int64, error)
	ListAgreementViewsByProvider(ctx context.Context, providerID uint) ([]agreement.View, error)
	ListAgreementViewsByRequester(ctx context.Context, requesterID uint) ([]agreement.View, error)
	WithTx(tx *gorm.DB) AgreementRepo
}

type DBAgreementRepo struct {
	db *gorm.DB
}

func NewAgreementRepo(db *gorm.DB) *DBAgreementRepo {
	return &DBAgreementRepo{
		db: db,
	}
}

func (r *DBAgreementRepo) CreateAgreement(ctx context.Context, a *agreement.Agreement) error {
	err := r.db.WithContext(ctx).Create(a).Error
	return translate(err, "active agreement on campaign %d for provider %d", a.CampaignID, a.ProviderID)
}

func (r *DBAgreementRepo) GetAgreementByID(ctx context.Context, id uint) (agreement.Agreement, error) {
	var a agreement.Agreement
	err := r.db.WithContext(ctx).First(&a, id).Error
	return a, translate(err, "agreement %d", id)
}

func (r *DBAgreementRepo) ActiveAgreementExists(ctx context.Context, campaignID, providerID, requesterID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&agreement.Agreement{}).
		Where("campaign_id = ? AND provider_id = ? AND requester_id = ? AND status = ?",
			campaignID, providerID, requesterID, agreement.StatusActive).
		Count(&n).Error
	return n > 0, translate(err, "lookup active agreement")
}

// MarkSettled flips an active agreement to settled. It reports false when the
// agreement was not active, so a replayed settlement changes nothing.
func (r *DBAgreementRepo) MarkSettled(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&agreement.Agreement{}).
		Where("id = ? AND status = ?", id, agreement.StatusActive).
		Updates(map[string]any{"status": agreement.StatusSettled, "settled_at": at})
	if res.Error != nil {
		return false, translate(res.Error, "settle agreement %d", id)
	}
	return res.RowsAffected == 1, nil
}

// AgreementBetweenExists looks for an active or settled agreement whose
// provider and requester are the unordered pair {userA, userB}.
func (r *DBAgreementRepo) AgreementBetweenExists(ctx context.Context, userA, userB uint, campaignID *uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&agreement.Agreement{}).
		Where("(provider_id = ? AND requester_id = ?) OR (provider_id = ? AND requester_id = ?)",
			userA, userB, userB, userA).
		Where("status IN ?", []agreement.Status{agreement.StatusActive, agreement.StatusSettled})
	if campaignID != nil {
		q = q.Where("campaign_id = ?", *campaignID)
	}

	var n int64
	err := q.Count(&n).Error
	return n > 0, translate(err, "match users %d and %d", userA, userB)
}

func (r *DBAgreementRepo) CountActiveByCampaign(ctx context.Context, campaignID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&agreement.Agreement{}).
		Where("campaign_id = ? AND status = ?", campaignID, agreement.StatusActive).
		Count(&n).Error
	return n, translate(err, "count agreements of campaign %d", campaignID)
}

func (r *DBAgreementRepo) ListAgreementViewsByProvider(ctx context.Context, providerID uint) ([]agreement.View, error) {
	var views []agreement.View
	err := r.viewQuery(ctx).Where("ag.provider_id = ?", providerID).Scan(&views).Error
	return views, translate(err, "list agreements of provider %d", providerID)
}

func (r *DBAgreementRepo) ListAgreementViewsByRequester(ctx context.Context, requesterID uint) ([]agreement.View, error) {
	var views []agreement.View
	err := r.viewQuery(ctx).Where("ag.requester_id = ?", requesterID).Scan(&views).Error
	return views, translate(err, "list agreements of requester %d", requesterID)
}

func (r *DBAgreementRepo) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("agreements ag").
		Select(`
            ag.id, ag.campaign_id, c.title AS campaign_title,
            c.description AS campaign_description, c.budget,
            ag.status, ag.created_at, ag.requester_id, ag.provider_id
        `).
		Joins("JOIN campaigns c ON c.id = ag.campaign_id").
		Order("ag.created_at DESC")
}

func (r *DBAgreementRepo) WithTx(tx *gorm.DB) AgreementRepo {
	if tx == nil {
		return r
	}
	return &DBAgreementRepo{
		db: tx,
	}
}
