package common

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
)

const (
	// Context keys
	ContextUserIDKey = "userID"
	ContextRoleKey   = "userRole"
	ContextUserKey   = "currentUser"
)

var ErrNoIdentity = errors.New("user ID not found in context")

// SetIdentity stores the authenticated user on the gin context.
func SetIdentity(c *gin.Context, u *user.User) {
	c.Set(ContextUserIDKey, u.ID)
	c.Set(ContextRoleKey, u.Role)
	c.Set(ContextUserKey, u)
}

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, ErrNoIdentity
	}
	userID, ok := v.(uint)
	if !ok {
		return 0, errors.New("user ID in context is not of type uint")
	}
	return userID, nil
}

// GetRoleFromContext retrieves the authenticated user's role.
func GetRoleFromContext(c *gin.Context) (user.Role, bool) {
	v, exists := c.Get(ContextRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}

// GetCurrentUser retrieves the authenticated user loaded by the auth middleware.
func GetCurrentUser(c *gin.Context) (*user.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}

// Actor is the caller of a domain operation.
type Actor struct {
	ID   uint
	Role user.Role
	Name string
	IP   string
}

func (a Actor) IsAdmin() bool { return a.Role == user.RoleAdmin }

// ActorFromContext builds an Actor from the authenticated request.
func ActorFromContext(c *gin.Context) (Actor, error) {
	u, ok := GetCurrentUser(c)
	if !ok {
		return Actor{}, ErrNoIdentity
	}
	return Actor{ID: u.ID, Role: u.Role, Name: u.Name, IP: c.ClientIP()}, nil
}

// RequireActor is ActorFromContext that answers 401 itself when no identity is present.
func RequireActor(c *gin.Context) (Actor, bool) {
	a, err := ActorFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return Actor{}, false
	}
	return a, true
}
