package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cbk-gemmy/finance-platform/pkg/randompkg"
	"github.com/cbk-gemmy/finance-platform/pkg/tokenpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/web"
)

func TestAuthMiddleware(t *testing.T) {
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	userID := randompkg.UserID()

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, r *http.Request) error
		wantStatusCode int
		wantError      string
		wantUserID     string
	}{
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "InvalidAuthorizationHeader",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "", userID, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrBadAuthHeaderFormat.Error(),
		},
		{
			name: "UnsupportedAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "unsupported", userID, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrUnsupportedAuthType.Error(),
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, userID, -time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name: "ForeignToken",
			setupAuth: func(t *testing.T, r *http.Request) error {
				otherMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
				if err != nil {
					return err
				}
				return AddAuthorization(r, otherMaker, AuthTypeBearer, userID, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrInvalidToken.Error(),
		},
		{
			name: "OK",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, userID, time.Minute)
			},
			wantStatusCode: http.StatusOK,
			wantUserID:     userID,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gin.SetMode(gin.ReleaseMode)
			server := gin.New()

			authPath := "/auth"
			handler := func(gctx *gin.Context) {
				identity, ok := IdentityFrom(gctx)
				if !ok {
					gctx.JSON(http.StatusInternalServerError, gin.H{})
					return
				}
				gctx.JSON(http.StatusOK, web.Data(identity.UserID))
			}
			server.GET(authPath, AuthMiddleware(tokenMaker), handler)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			if err != nil {
				t.Fatalf("http.NewRequest(%v, %v, nil) returned error: %v", http.MethodGet, authPath, err)
			}

			if err = tc.setupAuth(t, request); err != nil {
				t.Fatalf("tc.setupAuth(t, %v) returned error: %v", request, err)
			}

			server.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("recorder.Code = %v, tc.wantStatusCode = %v, want equal",
					recorder.Code, tc.wantStatusCode)
			}

			var got struct {
				Data  string `json:"data"`
				Error string `json:"error"`
			}
			if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if got.Error != tc.wantError {
				t.Errorf("got.Error = %v, tc.wantError = %v, want equal", got.Error, tc.wantError)
			}

			if got.Data != tc.wantUserID {
				t.Errorf("got.Data = %v, tc.wantUserID = %v, want equal", got.Data, tc.wantUserID)
			}
		})
	}
}

func TestIdentityFromWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)

	gctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := IdentityFrom(gctx); ok {
		t.Errorf("IdentityFrom() on unauthenticated context returned ok, want false")
	}

	gctx.Set(AuthPayloadKey, &tokenpkg.Payload{})

	if _, ok := IdentityFrom(gctx); ok {
		t.Errorf("IdentityFrom() on payload without user returned ok, want false")
	}
}
