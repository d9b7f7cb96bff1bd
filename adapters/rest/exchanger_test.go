package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	authclient "github.com/goliatone/go-auth-client"
	"github.com/goliatone/go-auth-client/adapters/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func TestExchanger_UserFromCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds authclient.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.com", creds.Email)

		json.NewEncoder(w).Encode(apiUser{ID: "1", Email: creds.Email})
	}))
	defer server.Close()

	exchanger := &rest.Exchanger[apiUser, authclient.Credentials]{
		LoginURL: server.URL + "/login",
	}

	user, err := exchanger.UserFromCredentials(context.Background(), authclient.Credentials{
		Email:    "a@b.com",
		Password: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestExchanger_RejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	exchanger := &rest.Exchanger[apiUser, authclient.Credentials]{
		LoginURL: server.URL + "/login",
	}

	_, err := exchanger.UserFromCredentials(context.Background(), authclient.Credentials{
		Email:    "a@b.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, rest.ErrUnauthorized)
}

func TestExchanger_CreateUserMergesExtra(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "a@b.com", payload["email"])
		assert.Equal(t, "trial", payload["plan"])

		json.NewEncoder(w).Encode(apiUser{ID: "2", Email: "a@b.com"})
	}))
	defer server.Close()

	exchanger := &rest.Exchanger[apiUser, authclient.Credentials]{
		RegisterURL: server.URL + "/register",
	}

	user, err := exchanger.CreateUserFromCredentials(
		context.Background(),
		authclient.Credentials{Email: "a@b.com", Password: "x"},
		map[string]any{"plan": "trial"},
	)
	require.NoError(t, err)
	assert.Equal(t, "2", user.ID)
}

func TestExchanger_DeleteUserSession(t *testing.T) {
	var gotMethod, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	// a decorated client carries the bearer token into the logout call
	client := authclient.New[apiUser, authclient.Credentials]()
	client.Tokens().SetToken("tok")

	exchanger := &rest.Exchanger[apiUser, authclient.Credentials]{
		LogoutURL:  server.URL + "/logout",
		HTTPClient: client.HTTPClient(nil),
	}

	require.NoError(t, exchanger.DeleteUserSession(context.Background(), &apiUser{ID: "1"}))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestExchanger_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	exchanger := &rest.Exchanger[apiUser, authclient.Credentials]{
		LoginURL: server.URL + "/login",
	}

	_, err := exchanger.UserFromCredentials(context.Background(), authclient.Credentials{
		Email:    "a@b.com",
		Password: "x",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, rest.ErrUnauthorized)
}
