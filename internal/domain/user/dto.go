package user

// Profile is the user record returned by the profile collaborator's batched
// lookup. Only the fields used for decoration are kept.
type Profile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
	Category string `json:"category,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// Summary is the decoration attached to campaign and offer listings.
type Summary struct {
	ID       uint   `json:"id" example:"12"`
	Username string `json:"username" example:"acme_ads"`
	Category string `json:"category,omitempty" example:"fashion"`
	PhotoURL string `json:"photo_url,omitempty" example:"https://cdn.example.com/u/12.png"`
}

func (p Profile) Summary() *Summary {
	return &Summary{
		ID:       p.ID,
		Username: p.Username,
		Category: p.Category,
		PhotoURL: p.PhotoURL,
	}
}

// IndexProfiles keys profiles by user id.
func IndexProfiles(profiles []Profile) map[uint]Profile {
	out := make(map[uint]Profile, len(profiles))
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out
}
