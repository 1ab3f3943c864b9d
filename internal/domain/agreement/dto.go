package agreement

import "time"

// View is an agreement joined with its campaign for "my agreements".
type View struct {
	ID                  uint      `json:"id"`
	CampaignID          uint      `json:"campaign_id"`
	CampaignTitle       string    `json:"campaign_title"`
	CampaignDescription string    `json:"campaign_description"`
	Budget              *float64  `json:"budget,omitempty"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	RequesterID         uint      `json:"requester_id"`
	ProviderID          uint      `json:"provider_id"`
}

// FinalizePaymentEvent is delivered by the payment collaborator once funds
// for an agreement are captured.
type FinalizePaymentEvent struct {
	AgreementID uint `json:"agreementId" binding:"required" example:"42"`
}
