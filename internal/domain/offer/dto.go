package offer

import (
	"time"

	"github.com/linskybing/engagement-go/internal/domain/user"
)

type UpdateStatusDTO struct {
	Status Status `json:"status" binding:"required" example:"accepted"`
}

// ApplicationView is an application joined with its campaign, as listed to
// either side. Provider is only filled for requester-facing listings.
type ApplicationView struct {
	ID            uint          `json:"id"`
	CampaignID    uint          `json:"campaign_id"`
	CampaignTitle string        `json:"campaign_title"`
	RequesterID   uint          `json:"requester_id"`
	ProviderID    uint          `json:"provider_id"`
	Provider      *user.Summary `json:"provider,omitempty" gorm:"-"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// InvitationView is an invitation joined with its campaign.
type InvitationView struct {
	ID                  uint     `json:"id"`
	CampaignID          uint     `json:"campaign_id"`
	CampaignTitle       string   `json:"campaign_title"`
	CampaignDescription string   `json:"campaign_description"`
	Budget              *float64 `json:"budget,omitempty"`
	RequesterID         uint     `json:"requester_id"`
	ProviderID          uint     `json:"provider_id"`
	Status              Status   `json:"status"`
}
