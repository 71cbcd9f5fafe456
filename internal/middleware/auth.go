package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/token"
)

// AuthMiddleware verifies the bearer token and loads the caller.
func AuthMiddleware(jwtSecret string, users user.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			responses.Unauthorized(c, "No token")
			return
		}

		claims, err := token.ValidateJWT(raw, jwtSecret)
		if err != nil {
			logger.Debug(c.Request.Context()).Err(err).Msg("rejected bearer token")
			responses.Unauthorized(c, "Invalid token")
			return
		}

		u, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			responses.HandleError(c, err)
			return
		}
		if u == nil {
			responses.Unauthorized(c, "User not found")
			return
		}
		if !u.IsActive() {
			responses.Forbidden(c, "Account is not active")
			return
		}

		common.SetIdentity(c, u)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireRoles allows the request through only when the caller's role is listed.
// It must be mounted after AuthMiddleware.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		if !r.IsValid() {
			panic("middleware: invalid role " + string(r))
		}
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := common.GetRoleFromContext(c)
		if !ok {
			responses.Unauthorized(c, "No token")
			return
		}
		if _, ok := allowed[role]; !ok {
			responses.Forbidden(c, "You don't have permission to access this resource")
			return
		}
		c.Next()
	}
}
