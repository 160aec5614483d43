//go:build integration

package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/internal/integrationtest"
	"github.com/cbk-gemmy/finance-platform/internal/test"
	"github.com/cbk-gemmy/finance-platform/pkg/web"
)

type userResponse struct {
	User domain.UserWithoutPassword `json:"user"`
}

func TestCreateUserAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	seededUser := test.SeedUser(t, server.DB)

	var (
		username = "firstuser"
		password = "qwerty"
		fullname = "Foo Boo"
		email    = "foo@boo.email"
	)

	testCases := []struct {
		name           string
		requestBody    gin.H
		wantStatusCode int
		wantError      string
		checkData      func(reqBody gin.H, resp web.Response)
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"username": username,
				"password": password,
				"fullname": fullname,
				"email":    email,
			},
			wantStatusCode: http.StatusOK,
			checkData: func(reqBody gin.H, resp web.Response) {
				if resp.AccessToken == "" {
					t.Error(`resp.AccessToken="", want not empty`)
				}
				if resp.AccessTokenExpiresAt == nil {
					t.Error(`resp.AccessTokenExpiresAt=nil, want not empty`)
				}
				if resp.RefreshToken == "" {
					t.Error(`resp.RefreshToken="", want not empty`)
				}
				if resp.RefreshTokenExpiresAt == nil {
					t.Error(`resp.RefreshTokenExpiresAt=nil, want not empty`)
				}

				gotData, ok := resp.Data.(*userResponse)
				if !ok {
					t.Fatalf(`resp.Data=%v, failed type conversion`, resp.Data)
				}

				wantData := domain.UserWithoutPassword{
					Username:  reqBody["username"].(string),
					FullName:  reqBody["fullname"].(string),
					Email:     reqBody["email"].(string),
					CreatedAt: time.Now(),
				}

				ignoreID := cmpopts.IgnoreFields(domain.UserWithoutPassword{}, "ID")
				delta := cmpopts.EquateApproxTime(time.Minute)
				if diff := cmp.Diff(wantData, gotData.User, ignoreID, delta); diff != "" {
					t.Errorf("resp.Data mismatch (-want +got):\n%s", diff)
				}

				if gotData.User.ID == "" {
					t.Error(`gotData.User.ID="", want generated id`)
				}
			},
		},
		{
			name: "InvalidUsername",
			requestBody: gin.H{
				"username": "user&%",
				"password": password,
				"fullname": fullname,
				"email":    email,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Username must contain only letters and digits",
		},
		{
			name: "ShortPassword",
			requestBody: gin.H{
				"username": username,
				"password": "short",
				"fullname": fullname,
				"email":    email,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be at least 6 characters long",
		},
		{
			name: "UniqueViolationUsername",
			requestBody: gin.H{
				"username": seededUser.Username,
				"password": password,
				"fullname": fullname,
				"email":    "other@boo.email",
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name: "UniqueViolationEmail",
			requestBody: gin.H{
				"username": username + "2",
				"password": password,
				"fullname": fullname,
				"email":    seededUser.Email,
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrEmailAlreadyExists.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			resp := web.Response{Data: &userResponse{}}

			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if resp.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, resp.Error, tc.wantError)
				}
				return
			}

			tc.checkData(tc.requestBody, resp)
		})
	}
}
