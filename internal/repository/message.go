package repository

import (
	"context"

	"github.com/linskybing/engagement-go/internal/domain/message"
	"gorm.io/gorm"
)

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *message.Message) error
	ListConversation(ctx context.Context, me, other, agreementID uint) ([]message.Message, error)
	WithTx(tx *gorm.DB) MessageRepo
}

type DBMessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *DBMessageRepo {
	return &DBMessageRepo{db: db}
}

func (r *DBMessageRepo) CreateMessage(ctx context.Context, m *message.Message) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "create message")
}

func (r *DBMessageRepo) ListConversation(ctx context.Context, me, other, agreementID uint) ([]message.Message, error) {
	var msgs []message.Message
	err := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", me, other, other, me).
		Order("sent_at ASC").
		Order("id ASC").
		Find(&msgs).Error
	return msgs, translate(err, "list messages of agreement %d", agreementID)
}

func (r *DBMessageRepo) WithTx(tx *gorm.DB) MessageRepo {
	if tx == nil {
		return r
	}
	return &DBMessageRepo{db: tx}
}
