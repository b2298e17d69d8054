package auth

import (
	"net/http"
	"time"

	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/user"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/responses"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/token"
	"github.com/allanbakerhussmann-crypto/pickleball-app/utils"
	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and token refresh.
type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

func NewAuthController(repo AuthRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param register body RegisterRequest true "Registration details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	existing, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "failed to check existing user")
		return
	}
	if existing != nil {
		responses.Conflict(c, "email already registered")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "failed to hash password")
		return
	}

	u := &user.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := ac.repo.CreateUser(u); err != nil {
		responses.InternalServerError(c, "failed to create user")
		return
	}

	if err := ac.repo.AssignRole(u.ID, "player"); err != nil {
		responses.InternalServerError(c, "failed to assign default role")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "User registered", gin.H{"id": u.ID, "username": u.Username})
}

// Login godoc
// @Summary Log in and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Login credentials"
// @Success 200 {object} responses.SuccessResponse{data=TokenPair}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	u, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "failed to look up user")
		return
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "invalid email or password")
		return
	}

	pair, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", pair)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse{data=TokenPair}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.appConfig.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "invalid refresh token: "+err.Error())
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.InternalServerError(c, "failed to look up refresh token")
		return
	}
	if stored == nil || stored.Revoked || stored.ExpiresAt.Before(time.Now()) {
		responses.Unauthorized(c, "refresh token revoked or expired")
		return
	}

	u, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil || u == nil {
		responses.Unauthorized(c, "user no longer exists")
		return
	}

	// Rotate: old token is revoked before a new pair is issued.
	if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "failed to rotate refresh token")
		return
	}

	pair, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed", pair)
}

func (ac *AuthController) issueTokens(u *user.User) (*TokenPair, error) {
	role := ""
	if len(u.Roles) > 0 {
		role = u.Roles[0].Name
	}

	access, err := token.GenerateJWT(u.ID, role, ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return nil, err
	}

	refresh, err := token.GenerateRefreshToken(u.ID, ac.appConfig.JWT.RefreshTokenSecret, ac.appConfig.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return nil, err
	}

	rt := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(time.Duration(ac.appConfig.JWT.RefreshTokenExpiryDays) * 24 * time.Hour),
	}
	if err := ac.repo.SaveRefreshToken(rt); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
