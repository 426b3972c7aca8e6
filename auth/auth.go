package auth

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var (
	fullNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminRegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func validateRegister(req *RegisterRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if len(req.FullName) < 2 || len(req.FullName) > 100 {
		return apperrors.Validation("Full name must be between 2 and 100 characters")
	}
	if !fullNameRe.MatchString(req.FullName) {
		return apperrors.Validation("Full name can only contain letters and spaces")
	}
	if !emailRe.MatchString(req.Email) {
		return apperrors.Validation("Please provide a valid email address")
	}
	if len(req.Password) < 6 || len(req.Password) > 100 {
		return apperrors.Validation("Password must be between 6 and 100 characters")
	}
	if !hasPasswordMix(req.Password, false) {
		return apperrors.Validation("Password must contain at least one lowercase letter, one uppercase letter, and one number")
	}
	return nil
}

func validateAdminRegister(req *AdminRegisterRequest) error {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	if len(req.Username) < 3 || len(req.Username) > 50 {
		return apperrors.Validation("Username must be between 3 and 50 characters")
	}
	if !usernameRe.MatchString(req.Username) {
		return apperrors.Validation("Username can only contain letters, numbers, and underscores")
	}
	if len(req.Password) < 8 || len(req.Password) > 100 {
		return apperrors.Validation("Password must be between 8 and 100 characters")
	}
	if !hasPasswordMix(req.Password, true) {
		return apperrors.Validation("Password must contain at least one lowercase letter, one uppercase letter, one number, and one special character")
	}
	return nil
}

func hasPasswordMix(password string, requireSpecial bool) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	if requireSpecial && !special {
		return false
	}
	return lower && upper && digit
}

// POST /auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		if err := validateRegister(&req); err != nil {
			apperrors.Respond(c, err)
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			apperrors.Respond(c, apperrors.Conflict("A user with this email address already exists"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		user := models.User{
			FullName: req.FullName,
			Email:    req.Email,
			Password: string(hashed),
			Role:     "customer",
		}
		if err := db.Create(&user).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		token, err := IssueUserToken(user)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"token":   token,
			"user":    user,
		})
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.Password == "" {
			apperrors.Respond(c, apperrors.Validation("Email and password are required"))
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			apperrors.Respond(c, apperrors.Authentication("Email or password is incorrect"))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			apperrors.Respond(c, apperrors.Authentication("Email or password is incorrect"))
			return
		}

		token, err := IssueUserToken(user)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

// POST /auth/admin/register
func AdminRegister(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminRegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		if err := validateAdminRegister(&req); err != nil {
			apperrors.Respond(c, err)
			return
		}

		var existing models.Admin
		err := db.Where("username = ?", req.Username).First(&existing).Error
		if err == nil {
			apperrors.Respond(c, apperrors.Conflict("An admin with this username already exists"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		admin := models.Admin{
			Username: req.Username,
			Password: string(hashed),
		}
		if err := db.Create(&admin).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Admin registered successfully",
			"admin":   admin,
		})
	}
}

// POST /auth/admin/login
func AdminLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		req.Username = strings.ToLower(strings.TrimSpace(req.Username))
		if req.Username == "" || req.Password == "" {
			apperrors.Respond(c, apperrors.Validation("Username and password are required"))
			return
		}

		var admin models.Admin
		if err := db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
			apperrors.Respond(c, apperrors.Authentication("Username or password is incorrect"))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
			apperrors.Respond(c, apperrors.Authentication("Username or password is incorrect"))
			return
		}

		token, err := IssueAdminToken(admin)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"admin":   admin,
		})
	}
}

// GET /auth/verify
//
// Decodes the bearer token and re-fetches the principal so a token
// issued before the account was deleted no longer verifies.
func Verify(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			apperrors.Respond(c, apperrors.Authentication("Please provide a valid authentication token"))
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		if claims.Type == TypeAdmin {
			var admin models.Admin
			if err := db.First(&admin, claims.AdminID).Error; err != nil {
				apperrors.Respond(c, apperrors.Authentication("The administrator associated with this token no longer exists"))
				return
			}
			c.JSON(http.StatusOK, gin.H{"valid": true, "type": TypeAdmin, "user": admin})
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			apperrors.Respond(c, apperrors.Authentication("The user associated with this token no longer exists"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "type": TypeUser, "user": user})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer ..."
// header, or returns "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
