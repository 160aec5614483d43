package userservice

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
	"github.com/cbk-gemmy/finance-platform/pkg/idpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/passpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/randompkg"
)

func randomUser(t *testing.T) (domain.User, string) {
	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%v) failed: %v", password, err)
	}

	user := domain.User{
		ID:             idpkg.New(),
		Username:       randompkg.Username(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	return user, password
}

type eqCreateUserParamsMatcher struct {
	arg      domain.CreateUserParams
	password string
}

func (e eqCreateUserParamsMatcher) Matches(x interface{}) bool {
	arg, ok := x.(domain.CreateUserParams)
	if !ok {
		return false
	}

	if err := passpkg.Check(e.password, arg.HashedPassword); err != nil {
		return false
	}

	e.arg.HashedPassword = arg.HashedPassword

	return reflect.DeepEqual(e.arg, arg)
}

func (e eqCreateUserParamsMatcher) String() string {
	return fmt.Sprintf("matches arg %v and password %v", e.arg, e.password)
}

func EqCreateUserParams(arg domain.CreateUserParams, password string) gomock.Matcher {
	return eqCreateUserParamsMatcher{arg, password}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	user, password := randomUser(t)

	type input struct {
		Username string
		Password string
		Fullname string
		Email    string
	}

	validArg := domain.CreateUserParams{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(userRepo *MockRepo)
		checkResponse func(t *testing.T, got domain.UserWithoutPassword)
		wantError     error
	}{
		{
			name:  "OK",
			input: input{user.Username, password, user.FullName, user.Email},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), EqCreateUserParams(validArg, password)).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(t *testing.T, got domain.UserWithoutPassword) {
				want := NewUserWithoutPassword(user)

				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("userService.Create() mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "HashPasswordErr",
			input: input{user.Username, strings.Repeat("long", 100), user.FullName, user.Email},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: errorspkg.ErrInternal,
		},
		{
			name:  "ErrUsernameAlreadyExists",
			input: input{user.Username, password, user.FullName, user.Email},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), EqCreateUserParams(validArg, password)).
					Times(1).
					Return(domain.User{}, domain.ErrUsernameAlreadyExists)
			},
			wantError: domain.ErrUsernameAlreadyExists,
		},
		{
			name:  "CreateUserRepoErr",
			input: input{user.Username, password, user.FullName, user.Email},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), EqCreateUserParams(validArg, password)).
					Times(1).
					Return(domain.User{}, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			userService := New(userRepo)
			userService.newID = func() string { return user.ID }

			tc.buildStubs(userRepo)

			got, err := userService.Create(context.Background(),
				tc.input.Username,
				tc.input.Password,
				tc.input.Fullname,
				tc.input.Email,
			)
			if err != tc.wantError {
				t.Fatalf("userService.Create(context.Background(), %v, %v, %v, %v) got error %v, want %v",
					tc.input.Username, tc.input.Password, tc.input.Fullname, tc.input.Email, err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			tc.checkResponse(t, got)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	user, password := randomUser(t)

	testCases := []struct {
		name          string
		username      string
		password      string
		buildStubs    func(userRepo *MockRepo)
		checkResponse func(t *testing.T, got domain.UserWithoutPassword)
		wantError     error
	}{
		{
			name:     "OK",
			username: user.Username,
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(t *testing.T, got domain.UserWithoutPassword) {
				want := NewUserWithoutPassword(user)

				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("userService.CheckPassword() mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:     "ErrUserNotFound",
			username: user.Username,
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUserNotFound,
		},
		{
			name:     "WrongPassword",
			username: user.Username,
			password: "wrong",
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(user, nil)
			},
			wantError: domain.ErrWrongPassword,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			userService := New(userRepo)

			tc.buildStubs(userRepo)

			got, err := userService.CheckPassword(context.Background(), tc.username, tc.password)
			if err != tc.wantError {
				t.Fatalf("userService.CheckPassword(context.Background(), %v, %v) got error %v, want %v",
					tc.username, tc.password, err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			tc.checkResponse(t, got)
		})
	}
}
