package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
)

type AuthController struct {
	service *AuthService
}

func NewAuthController(service *AuthService) *AuthController {
	return &AuthController{service: service}
}

// @Summary      Register a new user
// @Description  Create a player or scout account. Players may pass dob, scouts an organization.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse "Validation error or invalid input"
// @Failure      409   {object} responses.ErrorResponse "User with this email already exists"
// @Failure      429   {object} responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	resp, err := ac.service.Register(c.Request.Context(), req)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", resp)
}

// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Email and password"
// @Success      200   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      401   {object} responses.ErrorResponse "Invalid email or password"
// @Failure      403   {object} responses.ErrorResponse "Account is not active"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	resp, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Login successful", resp)
}

// @Summary      Refresh the access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200   {object} responses.SuccessResponse{data=TokenResponse}
// @Failure      401   {object} responses.ErrorResponse
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindError(c, err)
		return
	}
	resp, err := ac.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Token refreshed", resp)
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200   {object} responses.SuccessResponse{data=MeResponse}
// @Failure      401   {object} responses.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	u, ok := common.GetCurrentUser(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}
	resp, err := ac.service.Me(c.Request.Context(), u)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User retrieved successfully", resp)
}
