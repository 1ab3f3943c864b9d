package user

// Role is the participant kind carried in the verified identity claims.
type Role string

const (
	RoleRequester Role = "Requester"
	RoleProvider  Role = "Provider"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRequester, RoleProvider:
		return true
	}
	return false
}

// Actor is the resolved caller of a core operation. It is passed explicitly
// to every service method instead of being read from request state.
type Actor struct {
	ID   uint
	Role Role
}

func (a Actor) IsRequester() bool { return a.Role == RoleRequester }
func (a Actor) IsProvider() bool  { return a.Role == RoleProvider }
