package offer

import "time"

// Status is shared by applications and invitations.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an offer may move to.
func (s Status) IsDecision() bool {
	switch s {
	case StatusAccepted, StatusRejected:
		return true
	case StatusPending:
		return false
	}
	return false
}

// Application is a provider-initiated proposal to join a campaign.
type Application struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CampaignID uint       `gorm:"not null;uniqueIndex:idx_application_pair" json:"campaign_id"`
	ProviderID uint       `gorm:"not null;uniqueIndex:idx_application_pair;index" json:"provider_id"`
	Status     Status     `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// Invitation is a requester-initiated proposal to a specific provider.
type Invitation struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CampaignID  uint       `gorm:"not null;uniqueIndex:idx_invitation_pair" json:"campaign_id"`
	ProviderID  uint       `gorm:"not null;uniqueIndex:idx_invitation_pair;index" json:"provider_id"`
	RequesterID uint       `gorm:"not null;index" json:"requester_id"`
	Status      Status     `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}
