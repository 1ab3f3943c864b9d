package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repos struct {
	Campaign    CampaignRepo
	Application ApplicationRepo
	Invitation  InvitationRepo
	Agreement   AgreementRepo
	Audit       AuditRepo
	Message     MessageRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Campaign:    NewCampaignRepo(db),
		Application: NewApplicationRepo(db),
		Invitation:  NewInvitationRepo(db),
		Agreement:   NewAgreementRepo(db),
		Audit:       NewAuditRepo(db),
		Message:     NewMessageRepo(db),
		db:          db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Campaign:    r.Campaign.WithTx(tx),
		Application: r.Application.WithTx(tx),
		Invitation:  r.Invitation.WithTx(tx),
		Agreement:   r.Agreement.WithTx(tx),
		Audit:       r.Audit.WithTx(tx),
		Message:     r.Message.WithTx(tx),
		db:          tx,
	}
}

// ExecTx runs fn against repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
