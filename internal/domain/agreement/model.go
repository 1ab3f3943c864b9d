package agreement

import "time"

type Status string

const (
	StatusActive  Status = "active"
	StatusSettled Status = "settled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSettled:
		return true
	}
	return false
}

// Source names the kind of offer whose acceptance created the agreement.
type Source string

const (
	SourceApplication Source = "application"
	SourceInvitation  Source = "invitation"
)

// Agreement is the durable join record between a provider and a requester
// on one campaign. At most one agreement per triple may be active.
type Agreement struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CampaignID  uint       `gorm:"not null;uniqueIndex:idx_agreement_active_triple,where:status = 'active'" json:"campaign_id"`
	ProviderID  uint       `gorm:"not null;uniqueIndex:idx_agreement_active_triple,where:status = 'active';index" json:"provider_id"`
	RequesterID uint       `gorm:"not null;uniqueIndex:idx_agreement_active_triple,where:status = 'active';index" json:"requester_id"`
	Status      Status     `gorm:"size:16;not null;default:active" json:"status"`
	Source      Source     `gorm:"size:16;not null" json:"source"`
	SourceID    uint       `gorm:"not null" json:"source_id"`
	CreatedAt   time.Time  `json:"created_at"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
}

func (Agreement) TableName() string {
	return "agreements"
}

// Involves reports whether the unordered pair {a, b} is this agreement's
// provider and requester.
func (a Agreement) Involves(userA, userB uint) bool {
	return (a.ProviderID == userA && a.RequesterID == userB) ||
		(a.ProviderID == userB && a.RequesterID == userA)
}

// Origin identifies the offer that produced an agreement.
type Origin struct {
	Source Source
	ID     uint
}
