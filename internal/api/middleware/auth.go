package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/pkg/jwthelper"
)

const (
	CtxUserKey   = "authenticated_user"
	CtxClaimsKey = "token_claims"
)

type UserProvider interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type TokenChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type Authenticator struct {
	signingKey []byte
	users      UserProvider
	tokens     TokenChecker
}

func NewAuthenticator(signingKey string, users UserProvider, tokens TokenChecker) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		users:      users,
		tokens:     tokens,
	}
}

// VerifyJWT authenticates the bearer token, rejects revoked tokens, and
// loads the current user so downstream role checks always see the role
// as stored, not as it was when the token was issued.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("Missing Bearer Token"))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("Invalid Token"))
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized("Invalid Token"))
			return
		}

		revoked, err := a.tokens.IsTokenRevoked(ctx.Request.Context(), claims.ID)
		if err != nil {
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
		if revoked {
			response.RenderErr(ctx, response.ErrUnauthorized("Token Revoked"))
			return
		}

		user, err := a.users.GetUser(ctx.Request.Context(), claims.UserID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("Invalid Token"))
			return
		}

		ctx.Set(CtxUserKey, user)
		ctx.Set(CtxClaimsKey, claims)
		ctx.Next()
	}
}
