package message

import "time"

// Message is a chat line between the two parties of an agreement. It lives
// in the messaging gate's own store; the engagement authority never sees it.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index:idx_message_pair" json:"sender_id"`
	ReceiverID  uint      `gorm:"not null;index:idx_message_pair" json:"receiver_id"`
	AgreementID uint      `gorm:"not null;index" json:"agreement_id"`
	CampaignID  *uint     `json:"campaign_id,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	SentAt      time.Time `json:"sent_at"`
}

func (Message) TableName() string {
	return "messages"
}

type SendMessageDTO struct {
	ReceiverID  uint   `json:"receiver_id" binding:"required" example:"7"`
	AgreementID uint   `json:"agreement_id" binding:"required" example:"42"`
	CampaignID  *uint  `json:"campaign_id" example:"3"`
	Content     string `json:"content" binding:"required,max=4000" example:"Hi! Draft is ready."`
}

// Push is the payload delivered to the receiver's open sockets.
type Push struct {
	Type        string `json:"type"`
	MessageID   uint   `json:"message_id"`
	SenderID    uint   `json:"sender_id"`
	AgreementID uint   `json:"agreement_id"`
	Content     string `json:"content"`
}

// Notifier delivers a push to every open connection of a user and reports
// how many connections received it.
type Notifier interface {
	Notify(userID uint, p Push) int
}
