// Package sessiondelivery manages delivery layer of sessions.
package sessiondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
	"github.com/cbk-gemmy/finance-platform/pkg/tokenpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/web"
)

// Service provides service layer interface needed by session delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type Service interface {
	RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error)
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns session handler.
func NewHandler(ss Service) *Handler {
	return &Handler{
		service: ss,
	}
}

// Register mounts session routes on rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.RenewAccessToken)
}

type renewAccessTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RenewAccessToken handles http request to renew access token.
func (h *Handler) RenewAccessToken(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req renewAccessTokenRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.ValidationMsg(err)})

		return
	}

	accessToken, accessTokenExpiresAt, err := h.service.RenewAccessToken(ctx, req.RefreshToken)
	if err != nil {
		switch err {
		case tokenpkg.ErrInvalidToken,
			tokenpkg.ErrExpiredToken,
			domain.ErrSessionNotFound,
			domain.ErrBlockedSession,
			domain.ErrInvalidUser,
			domain.ErrMismatchedRefreshToken,
			domain.ErrExpiredSession:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: &accessTokenExpiresAt,
	}

	gctx.JSON(http.StatusOK, res)
}
