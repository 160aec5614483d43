// Package middleware provides gin middlewares shared by all delivery layers.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/pkg/tokenpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/web"
)

// Authorization header parts and the gin context key of the verified payload.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// Errors returned to the client when the authorization header is unusable.
var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
}

// AddAuthorization creates a token for userID and sets it as the authorization header of r.
func AddAuthorization(
	r *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	userID string,
	duration time.Duration,
) error {
	token, _, err := tokenMaker.CreateToken(userID, duration)
	if err != nil {
		return err
	}

	authHeader := fmt.Sprintf("%s %s", authType, token)
	r.Header.Set(AuthHeaderKey, authHeader)

	return nil
}

// AuthMiddleware rejects requests without a valid bearer token
// and stores the verified payload under AuthPayloadKey.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			l.Info().Err(ErrAuthHeaderNotFound).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 {
			l.Info().Err(ErrBadAuthHeaderFormat).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			l.Info().Err(ErrUnsupportedAuthType).Str("auth_type", authType).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))

			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			l.Info().Err(err).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

// IdentityFrom returns the caller identity set by AuthMiddleware.
// It reports false when the request was not authenticated.
func IdentityFrom(gctx *gin.Context) (Identity, bool) {
	v, ok := gctx.Get(AuthPayloadKey)
	if !ok {
		return Identity{}, false
	}

	payload, ok := v.(*tokenpkg.Payload)
	if !ok || payload.UserID == "" {
		return Identity{}, false
	}

	return Identity{UserID: payload.UserID}, true
}
