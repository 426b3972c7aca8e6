package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/auth"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

// RequireUser validates a customer bearer token and re-fetches the
// user row, so tokens outlive the account by zero requests. Sets
// "user_id" and "user" on the context.
func RequireUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.BearerToken(c)
		if tokenString == "" {
			apperrors.Respond(c, apperrors.Authentication("Please provide a valid authentication token"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			apperrors.Respond(c, err)
			c.Abort()
			return
		}
		if claims.Type != auth.TypeUser {
			apperrors.Respond(c, apperrors.Authorization("This endpoint requires a customer account"))
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			apperrors.Respond(c, apperrors.Authentication("The user associated with this token no longer exists"))
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// RequireAdmin validates an admin bearer token. A syntactically valid
// customer token is rejected with 403 before any lookup.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.BearerToken(c)
		if tokenString == "" {
			apperrors.Respond(c, apperrors.Authentication("Please provide a valid authentication token"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			apperrors.Respond(c, err)
			c.Abort()
			return
		}
		if claims.Type != auth.TypeAdmin {
			apperrors.Respond(c, apperrors.Authorization("This endpoint requires administrator privileges"))
			c.Abort()
			return
		}

		var admin models.Admin
		if err := db.First(&admin, claims.AdminID).Error; err != nil {
			apperrors.Respond(c, apperrors.Authentication("The administrator associated with this token no longer exists"))
			c.Abort()
			return
		}

		c.Set("admin_id", admin.ID)
		c.Set("admin", admin)
		c.Next()
	}
}

// UserID returns the authenticated user's id set by RequireUser.
func UserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}
