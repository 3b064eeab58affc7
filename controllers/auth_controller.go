// File: /controllers/auth_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"livewall-api/config"
	"livewall-api/models"
	"livewall-api/utils"
)

// AuthController handles moderation login. There are no user accounts:
// just two shared passwords, one per tier, checked against bcrypt hashes
// from the environment.
type AuthController struct {
	jwtSecret              string
	moderatorPasswordHash  string
	superAdminPasswordHash string
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{
		jwtSecret:              cfg.JWTSecret,
		moderatorPasswordHash:  cfg.ModeratorPasswordHash,
		superAdminPasswordHash: cfg.SuperAdminPasswordHash,
	}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login resolves the supplied password to a moderation role and issues a
// 24h token carrying that role as a claim.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	role := ac.resolveRole(req.Password)
	if role == models.RolePublic {
		utils.SendError(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role.String(),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(ac.jwtSecret))
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: signed,
		Role:  role.String(),
	})
}

func (ac *AuthController) resolveRole(password string) models.Role {
	if ac.superAdminPasswordHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(ac.superAdminPasswordHash), []byte(password)) == nil {
		return models.RoleSuperAdmin
	}
	if ac.moderatorPasswordHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(ac.moderatorPasswordHash), []byte(password)) == nil {
		return models.RoleModerator
	}
	return models.RolePublic
}
