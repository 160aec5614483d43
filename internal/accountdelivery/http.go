// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/internal/middleware"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
	"github.com/cbk-gemmy/finance-platform/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, userID, name string) (domain.Account, error)
	Get(ctx context.Context, userID, id string) (domain.AccountSummary, error)
	List(ctx context.Context, userID string) ([]domain.AccountSummary, error)
	BulkDelete(ctx context.Context, userID string, ids []string) ([]domain.DeletedAccount, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

// Register mounts account routes on rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/", h.Get)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.POST("/bulk-delete", h.BulkDelete)
}

func identity(gctx *gin.Context) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFrom(gctx)
	if !ok {
		zerolog.Ctx(gctx.Request.Context()).Warn().Err(domain.ErrUnauthorized).Send()
		gctx.JSON(http.StatusUnauthorized, web.Error(domain.ErrUnauthorized))
	}

	return id, ok
}

func badRequest(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: web.ValidationMsg(err)})
}

// List handles http request to list accounts of the caller.
func (h *Handler) List(gctx *gin.Context) {
	caller, ok := identity(gctx)
	if !ok {
		return
	}

	accounts, err := h.service.List(gctx.Request.Context(), caller.UserID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Data(accounts))
}

type getRequest struct {
	ID string `uri:"id" binding:"required,notblank"`
}

// Get handles http request to get account of the caller.
func (h *Handler) Get(gctx *gin.Context) {
	caller, ok := identity(gctx)
	if !ok {
		return
	}

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	account, err := h.service.Get(gctx.Request.Context(), caller.UserID, req.ID)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Data(account))
}

type createRequest struct {
	Name string `json:"name" binding:"required,notblank,max=256"`
}

// Create handles http request to create account for the caller.
func (h *Handler) Create(gctx *gin.Context) {
	caller, ok := identity(gctx)
	if !ok {
		return
	}

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	account, err := h.service.Create(gctx.Request.Context(), caller.UserID, req.Name)
	if err != nil {
		switch err {
		case domain.ErrAccountAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Data(account))
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// BulkDelete handles http request to delete several accounts of the caller.
func (h *Handler) BulkDelete(gctx *gin.Context) {
	caller, ok := identity(gctx)
	if !ok {
		return
	}

	var req bulkDeleteRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	deleted, err := h.service.BulkDelete(gctx.Request.Context(), caller.UserID, req.IDs)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Data(deleted))
}
