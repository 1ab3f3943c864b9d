package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/engagement-go/internal/domain/user"
)

// Claims is the verified bearer identity issued by the identity service.
type Claims struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() user.Actor {
	return user.Actor{ID: c.UserID, Role: c.Role}
}
