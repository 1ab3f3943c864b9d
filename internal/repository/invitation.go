package repository

import (
	"context"
	"time"

	"github.com/linskybing/engagement-go/internal/domain/offer"
	"gorm.io/gorm"
)

type InvitationRepo interface {
	CreateInvitation(ctx context.Context, inv *offer.Invitation) error
	GetInvitationByID(ctx context.Context, id uint) (offer.Invitation, error)
	InvitationExists(ctx context.Context, campaignID, providerID uint) (bool, error)
	DecideInvitation(ctx context.Context, id uint, status offer.Status, at time.Time) (bool, error)
	ListInvitationsByCampaign(ctx context.Context, campaignID uint) ([]offer.Invitation, error)
	ListInvitationViewsByProvider(ctx context.Context, providerID uint) ([]offer.InvitationView, error)
	WithTx(tx *gorm.DB) InvitationRepo
}

type DBInvitationRepo struct {
	db *gorm.DB
}

func NewInvitationRepo(db *gorm.DB) *DBInvitationRepo {
	return &DBInvitationRepo{
		db: db,
	}
}

func (r *DBInvitationRepo) CreateInvitation(ctx context.Context, inv *offer.Invitation) error {
	err := r.db.WithContext(ctx).Create(inv).Error
	return translate(err, "invitation of provider %d to campaign %d", inv.ProviderID, inv.CampaignID)
}

func (r *DBInvitationRepo) GetInvitationByID(ctx context.Context, id uint) (offer.Invitation, error) {
	var inv offer.Invitation
	err := r.db.WithContext(ctx).First(&inv, id).Error
	return inv, translate(err, "invitation %d", id)
}

func (r *DBInvitationRepo) InvitationExists(ctx context.Context, campaignID, providerID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&offer.Invitation{}).
		Where("campaign_id = ? AND provider_id = ?", campaignID, providerID).
		Count(&n).Error
	return n > 0, translate(err, "lookup invitation")
}

func (r *DBInvitationRepo) DecideInvitation(ctx context.Context, id uint, status offer.Status, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&offer.Invitation{}).
		Where("id = ? AND status = ?", id, offer.StatusPending).
		Updates(map[string]any{"status": status, "decided_at": at})
	if res.Error != nil {
		return false, translate(res.Error, "decide invitation %d", id)
	}
	return res.RowsAffected == 1, nil
}

func (r *DBInvitationRepo) ListInvitationsByCampaign(ctx context.Context, campaignID uint) ([]offer.Invitation, error) {
	var invs []offer.Invitation
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&invs).Error
	return invs, translate(err, "list invitations of campaign %d", campaignID)
}

func (r *DBInvitationRepo) ListInvitationViewsByProvider(ctx context.Context, providerID uint) ([]offer.InvitationView, error) {
	var views []offer.InvitationView
	err := r.db.WithContext(ctx).
		Table("invitations i").
		Select(`
            i.id, i.campaign_id, c.title AS campaign_title,
            c.description AS campaign_description, c.budget,
            i.requester_id, i.provider_id, i.status
        `).
		Joins("JOIN campaigns c ON c.id = i.campaign_id").
		Where("i.provider_id = ?", providerID).
		Order("i.created_at DESC").
		Scan(&views).Error
	return views, translate(err, "list invitations of provider %d", providerID)
}

func (r *DBInvitationRepo) WithTx(tx *gorm.DB) InvitationRepo {
	if tx == nil {
		return r
	}
	return &DBInvitationRepo{
		db: tx,
	}
}
