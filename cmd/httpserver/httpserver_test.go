package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cbk-gemmy/finance-platform/internal/middleware"
	"github.com/cbk-gemmy/finance-platform/pkg/configpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
	"github.com/cbk-gemmy/finance-platform/pkg/randompkg"
	"github.com/cbk-gemmy/finance-platform/pkg/tokenpkg"
)

func testConfig() configpkg.Config {
	return configpkg.Config{
		ServerAddress:        "127.0.0.1:0",
		TokenSymmetricKey:    randompkg.String(32),
		TokenMaker:           tokenpkg.KindPaseto,
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}
}

// newTestServer builds a server without a database.
// Only routes that never reach a repository may be exercised.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	server, err := New(nil, zerolog.Nop(), testConfig())
	require.NoError(t, err)

	return server
}

type response struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func do(t *testing.T, s *Server, r *http.Request) (int, response) {
	t.Helper()

	recorder := httptest.NewRecorder()
	s.ServeHTTP(recorder, r)

	var res response
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	return recorder.Code, res
}

func TestNewUnsupportedTokenMaker(t *testing.T) {
	config := testConfig()
	config.TokenMaker = "unknown"

	_, err := New(nil, zerolog.Nop(), config)
	require.ErrorIs(t, err, tokenpkg.ErrUnsupportedMaker)
}

func TestRouting(t *testing.T) {
	server := newTestServer(t)

	userID := randompkg.UserID()

	authorized := func(r *http.Request) *http.Request {
		err := middleware.AddAuthorization(r, server.TokenMaker, middleware.AuthTypeBearer, userID, time.Minute)
		require.NoError(t, err)
		return r
	}

	testCases := []struct {
		name           string
		request        func() *http.Request
		wantStatusCode int
		wantError      string
		wantData       string
	}{
		{
			name: "UnknownRoute",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      errorspkg.ErrRouteNotFound.Error(),
		},
		{
			name: "RoutesLiveUnderBasePath",
			request: func() *http.Request {
				return authorized(httptest.NewRequest(http.MethodGet, "/accounts", nil))
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      errorspkg.ErrRouteNotFound.Error(),
		},
		{
			name: "ListUnauthenticated",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "CreateUnauthenticated",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(`{"name":"Checking"}`))
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "GetMissingID",
			request: func() *http.Request {
				return authorized(httptest.NewRequest(http.MethodGet, "/api/accounts/", nil))
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ID field is required",
		},
		{
			name: "CreateBlankName",
			request: func() *http.Request {
				return authorized(httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(`{"name":"  "}`)))
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name must not be blank",
		},
		{
			name: "BulkDeleteEmptyIDsSkipsDatabase",
			request: func() *http.Request {
				return authorized(httptest.NewRequest(http.MethodPost, "/api/accounts/bulk-delete", strings.NewReader(`{"ids":[]}`)))
			},
			wantStatusCode: http.StatusOK,
			wantData:       `[]`,
		},
		{
			name: "RenewWithoutToken",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{}`))
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "RefreshToken field is required",
		},
		{
			name: "RenewWithForeignToken",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"refresh_token":"garbage"}`))
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrInvalidToken.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			code, res := do(t, server, tc.request())

			require.Equal(t, tc.wantStatusCode, code)
			require.Equal(t, tc.wantError, res.Error)

			if tc.wantData != "" {
				require.JSONEq(t, tc.wantData, string(res.Data))
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	server := newTestServer(t)

	server.Engine.GET("/api/panic", func(gctx *gin.Context) {
		panic("boom")
	})

	code, res := do(t, server, httptest.NewRequest(http.MethodGet, "/api/panic", nil))

	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, errorspkg.ErrInternal.Error(), res.Error)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	server := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server.Run did not return after context cancel")
	}
}

func TestRunListenError(t *testing.T) {
	server := newTestServer(t)
	server.Config.ServerAddress = "invalid-address"

	err := server.Run(context.Background())
	require.Error(t, err)
}
