// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cbk-gemmy/finance-platform/internal/accountdelivery"
	"github.com/cbk-gemmy/finance-platform/internal/accountrepo"
	"github.com/cbk-gemmy/finance-platform/internal/accountservice"
	"github.com/cbk-gemmy/finance-platform/internal/middleware"
	"github.com/cbk-gemmy/finance-platform/internal/sessiondelivery"
	"github.com/cbk-gemmy/finance-platform/internal/sessionrepo"
	"github.com/cbk-gemmy/finance-platform/internal/sessionservice"
	"github.com/cbk-gemmy/finance-platform/internal/userdelivery"
	"github.com/cbk-gemmy/finance-platform/internal/userrepo"
	"github.com/cbk-gemmy/finance-platform/internal/userservice"
	"github.com/cbk-gemmy/finance-platform/pkg/configpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
	"github.com/cbk-gemmy/finance-platform/pkg/tokenpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/web"
)

// BasePath prefixes every API route.
const BasePath = "/api"

// ShutdownTimeout bounds how long Run waits for in-flight requests on shutdown.
const ShutdownTimeout = 30 * time.Second

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker

	logger zerolog.Logger
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.New(config.TokenMaker, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize session service: %w", err)
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("notblank", accountdelivery.ValidNotBlank); err != nil {
			return nil, fmt.Errorf("cannot register notblank validator: %w", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.CustomRecovery(func(gctx *gin.Context, recovered any) {
		zerolog.Ctx(gctx.Request.Context()).Error().Interface("panic", recovered).Msg("recovered from panic")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}))

	engine.NoRoute(func(gctx *gin.Context) {
		gctx.JSON(http.StatusNotFound, web.Error(errorspkg.ErrRouteNotFound))
	})

	api := engine.Group(BasePath)

	userHandler.Register(api.Group("/users"))
	sessionHandler.Register(api.Group("/sessions"))
	accountHandler.Register(api.Group("/accounts", middleware.AuthMiddleware(tokenMaker)))

	server := &Server{
		DB:         conn,
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
		logger:     logger,
	}

	return server, nil
}

// Run serves HTTP on Config.ServerAddress until ctx is done
// and then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.ServerAddress,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("address", srv.Addr).Msg("server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		s.logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		return nil
	})

	return g.Wait()
}
