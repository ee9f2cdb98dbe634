package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dom/task-manager/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"username":        "newuser",
				"email":           "newuser@example.com",
				"password":        "Password1!",
				"confirmPassword": "Password1!",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotEmpty(t, result.AccessToken)
			},
		},
		{
			name: "duplicate username",
			request: map[string]string{
				"username":        "existinguser",
				"email":           "fresh@example.com",
				"password":        "Password1!",
				"confirmPassword": "Password1!",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					WithEmail("existing@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "missing username",
			request: map[string]string{
				"email":           "nobody@example.com",
				"password":        "Password1!",
				"confirmPassword": "Password1!",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "password mismatch",
			request: map[string]string{
				"username":        "mismatch",
				"email":           "mismatch@example.com",
				"password":        "Password1!",
				"confirmPassword": "Password2!",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			request: map[string]string{
				"username":        "weakling",
				"email":           "weakling@example.com",
				"password":        "password",
				"confirmPassword": "password",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "at least 8 characters")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithEmail("loginuser@example.com").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
	}{
		{
			name: "login by username",
			request: map[string]string{
				"usernameOrEmail": user.Username,
				"password":        rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "login by email",
			request: map[string]string{
				"usernameOrEmail": user.Email,
				"password":        rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"usernameOrEmail": user.Username,
				"password":        "Wrong1!password",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown user",
			request: map[string]string{
				"usernameOrEmail": "nonexistent",
				"password":        rawPassword,
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotEmpty(t, result.AccessToken)
			}
		})
	}
}

func TestAuthHandler_Login_ErrorsAreIndistinguishable(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithUsername("distinct").
		WithEmail("distinct@example.com").
		Build(t, ts.DB.DB)

	readBody := func(request map[string]string) (int, string) {
		body, _ := json.Marshal(request)
		resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		buf := new(bytes.Buffer)
		_, err = buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, buf.String()
	}

	wrongPasswordStatus, wrongPasswordBody := readBody(map[string]string{
		"usernameOrEmail": user.Username,
		"password":        "Wrong1!password",
	})
	unknownUserStatus, unknownUserBody := readBody(map[string]string{
		"usernameOrEmail": "nosuchuser",
		"password":        "Wrong1!password",
	})

	assert.Equal(t, wrongPasswordStatus, unknownUserStatus)
	assert.Equal(t, wrongPasswordBody, unknownUserBody)
}

func TestAuthHandler_Refresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithRefreshToken("stored-refresh-token").
		WithRefreshTokenExpiry(time.Now().UTC().Add(time.Hour)).
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
	}{
		{
			name: "valid refresh",
			request: map[string]string{
				"userId":       user.ID.String(),
				"refreshToken": "stored-refresh-token",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong token",
			request: map[string]string{
				"userId":       user.ID.String(),
				"refreshToken": "some-other-token",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed user id",
			request: map[string]string{
				"userId":       "not-a-uuid",
				"refreshToken": "stored-refresh-token",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/refresh"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
