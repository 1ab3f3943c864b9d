package campaign

import "time"

type Status string

const (
	StatusActive  Status = "active"
	StatusPassive Status = "passive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPassive:
		return true
	}
	return false
}

// Campaign is a capacity-bounded offer posted by a requester.
// ActiveAgreements counts the campaign's agreements in status active and is
// only changed in the same transaction that inserts or settles an agreement.
type Campaign struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RequesterID      uint      `gorm:"not null;index" json:"requester_id"`
	Title            string    `gorm:"size:200;not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	Budget           *float64  `json:"budget,omitempty"`
	Capacity         *int      `json:"capacity,omitempty"`
	Status           Status    `gorm:"size:16;not null;default:active;index" json:"status"`
	ActiveAgreements int       `gorm:"not null;default:0" json:"active_agreements"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (c Campaign) IsActive() bool {
	return c.Status == StatusActive
}

func (c Campaign) OwnedBy(requesterID uint) bool {
	return c.RequesterID == requesterID
}

// HasRoom reports whether another active agreement fits under the capacity.
func (c Campaign) HasRoom() bool {
	return c.Capacity == nil || c.ActiveAgreements < *c.Capacity
}
