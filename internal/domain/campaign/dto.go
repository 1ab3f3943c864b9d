package campaign

import "github.com/linskybing/engagement-go/internal/domain/user"

type CreateCampaignDTO struct {
	Title       string   `json:"title" binding:"required,max=200" example:"Spring launch"`
	Description string   `json:"description" binding:"required" example:"Short-form videos for our spring collection"`
	Budget      *float64 `json:"budget" binding:"omitempty,gte=0" example:"1500"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1" example:"3"`
}

type UpdateCampaignDTO struct {
	Title       *string  `json:"title" binding:"omitempty,max=200"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget" binding:"omitempty,gte=0"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1"`
	Status      *Status  `json:"status"`
}

// ListingDTO is a campaign as shown in the public listing.
type ListingDTO struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Budget      *float64      `json:"budget,omitempty"`
	Capacity    *int          `json:"capacity,omitempty"`
	Status      Status        `json:"status"`
	Requester   *user.Summary `json:"requester"`
}

func (c Campaign) Listing(requester *user.Summary) ListingDTO {
	return ListingDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Budget:      c.Budget,
		Capacity:    c.Capacity,
		Status:      c.Status,
		Requester:   requester,
	}
}
