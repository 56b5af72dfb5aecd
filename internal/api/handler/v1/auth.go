package v1

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/request"
	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/pkg/jwthelper"
	"github.com/oshanw/pharmacare-api/internal/service"
)

type authService interface {
	Signup(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
}

type AuthHandler struct {
	signingKey []byte
	svc        authService
}

func NewAuthHandler(signingKey string, svc authService) *AuthHandler {
	return &AuthHandler{
		signingKey: []byte(signingKey),
		svc:        svc,
	}
}

// LoginResponse is returned on a successful login inside the envelope.
type LoginResponse struct {
	User        domain.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

// HandleSignup godoc
// @Summary  Register a new staff user
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body request.SignupRequest true "request body"
// @Success  201 {object} response.Envelope
// @Failure  422 {object} response.Err
// @Router   /signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	user, err := h.svc.Signup(ctx.Request.Context(), domain.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, unprocessable("Username Already Taken"))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderCreated(ctx, user, "User Created Successfully")
}

// HandleLogin godoc
// @Summary  Authenticate and receive an access token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body request.LoginRequest true "request body"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrUnauthorized("Invalid Username Or Password"))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken(h.signingKey, user.ID, ctx.Request.UserAgent())
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, LoginResponse{
		User:        user,
		AccessToken: token,
	}, "Logged In Successfully")
}

// HandleLogout godoc
// @Summary  Revoke the presented access token
// @Tags     auth
// @Produce  json
// @Security BearerToken
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Router   /logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("Invalid Token"))
		return
	}

	err := h.svc.Logout(ctx.Request.Context(), claims.ID, claims.UserID, claims.ExpiresAt.Time)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, nil, "Logged Out Successfully")
}
