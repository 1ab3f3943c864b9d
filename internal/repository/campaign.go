package repository

import (
	"context"

	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CampaignRepo interface {
	CreateCampaign(ctx context.Context, c *campaign.Campaign) error
	GetCampaignByID(ctx context.Context, id uint) (campaign.Campaign, error)
	GetCampaignForUpdate(ctx context.Context, id uint) (campaign.Campaign, error)
	UpdateCampaign(ctx context.Context, c *campaign.Campaign) error
	ListCampaignsByStatus(ctx context.Context, status campaign.Status) ([]campaign.Campaign, error)
	ListCampaignsByRequester(ctx context.Context, requesterID uint) ([]campaign.Campaign, error)
	ReserveSlot(ctx context.Context, id uint) (bool, error)
	ReleaseSlot(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) CampaignRepo
}

type DBCampaignRepo struct {
	db *gorm.DB
}

func NewCampaignRepo(db *gorm.DB) *DBCampaignRepo {
	return &DBCampaignRepo{
		db: db,
	}
}

func (r *DBCampaignRepo) CreateCampaign(ctx context.Context, c *campaign.Campaign) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "create campaign")
}

func (r *DBCampaignRepo) GetCampaignByID(ctx context.Context, id uint) (campaign.Campaign, error) {
	var c campaign.Campaign
	err := r.db.WithContext(ctx).First(&c, id).Error
	return c, translate(err, "campaign %d", id)
}

// GetCampaignForUpdate row-locks the campaign until the surrounding
// transaction ends. SQLite ignores the locking clause.
func (r *DBCampaignRepo) GetCampaignForUpdate(ctx context.Context, id uint) (campaign.Campaign, error) {
	var c campaign.Campaign
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, id).Error
	return c, translate(err, "campaign %d", id)
}

// UpdateCampaign writes the owner-editable columns only; active_agreements
// belongs to ReserveSlot and ReleaseSlot.
func (r *DBCampaignRepo) UpdateCampaign(ctx context.Context, c *campaign.Campaign) error {
	err := r.db.WithContext(ctx).
		Model(c).
		Select("title", "description", "budget", "capacity", "status", "updated_at").
		Updates(c).Error
	return translate(err, "update campaign %d", c.ID)
}

func (r *DBCampaignRepo) ListCampaignsByStatus(ctx context.Context, status campaign.Status) ([]campaign.Campaign, error) {
	var campaigns []campaign.Campaign
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, translate(err, "list campaigns")
}

func (r *DBCampaignRepo) ListCampaignsByRequester(ctx context.Context, requesterID uint) ([]campaign.Campaign, error) {
	var campaigns []campaign.Campaign
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, translate(err, "list campaigns of requester %d", requesterID)
}

// ReserveSlot increments the active-agreement counter only while it is below
// the capacity. It reports false, without writing, when the campaign is full.
func (r *DBCampaignRepo) ReserveSlot(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&campaign.Campaign{}).
		Where("id = ? AND (capacity IS NULL OR active_agreements < capacity)", id).
		UpdateColumn("active_agreements", gorm.Expr("active_agreements + 1"))
	if res.Error != nil {
		return false, translate(res.Error, "reserve slot on campaign %d", id)
	}
	return res.RowsAffected == 1, nil
}

func (r *DBCampaignRepo) ReleaseSlot(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&campaign.Campaign{}).
		Where("id = ? AND active_agreements > 0", id).
		UpdateColumn("active_agreements", gorm.Expr("active_agreements - 1")).Error
	return translate(err, "release slot on campaign %d", id)
}

func (r *DBCampaignRepo) WithTx(tx *gorm.DB) CampaignRepo {
	if tx == nil {
		return r
	}
	return &DBCampaignRepo{
		db: tx,
	}
}
