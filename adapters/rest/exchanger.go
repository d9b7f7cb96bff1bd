// Package rest implements the CredentialExchanger port against a
// conventional JSON-over-HTTP auth API: POST credentials to a login or
// register endpoint, DELETE (or POST) to a logout endpoint. Hosts with a
// different wire shape implement the port themselves.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	authclient "github.com/goliatone/go-auth-client"
)

// ErrUnauthorized is returned when the API rejects the credentials.
var ErrUnauthorized = goerrors.New("credentials rejected", goerrors.CategoryAuth).
	WithTextCode("auth_client_rest_unauthorized").
	WithCode(goerrors.CodeUnauthorized)

// Exchanger talks to the host's auth endpoints. Hand it the client's
// decorated HTTP client so logout requests carry the bearer token and
// response Authorization headers flow back into the token holder.
type Exchanger[T any, R any] struct {
	LoginURL    string
	RegisterURL string
	LogoutURL   string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	// LogoutMethod defaults to http.MethodDelete.
	LogoutMethod string

	Logger authclient.Logger
}

var _ authclient.CredentialExchanger[struct{}, struct{}] = (*Exchanger[struct{}, struct{}])(nil)

func (e *Exchanger[T, R]) httpClient() *http.Client {
	if e.HTTPClient != nil {
		return e.HTTPClient
	}
	return http.DefaultClient
}

func (e *Exchanger[T, R]) logger() authclient.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return nil
}

// UserFromCredentials posts credentials to LoginURL and decodes the user.
func (e *Exchanger[T, R]) UserFromCredentials(ctx context.Context, credentials R) (*T, error) {
	return e.postForUser(ctx, e.LoginURL, credentials, nil)
}

// CreateUserFromCredentials posts credentials to RegisterURL. Extra fields
// are merged into the request body alongside the credential fields.
func (e *Exchanger[T, R]) CreateUserFromCredentials(ctx context.Context, credentials R, extra map[string]any) (*T, error) {
	return e.postForUser(ctx, e.RegisterURL, credentials, extra)
}

// DeleteUserSession invalidates the session server-side. The user record
// is not sent; the API identifies the session from the bearer token.
func (e *Exchanger[T, R]) DeleteUserSession(ctx context.Context, user *T) error {
	method := e.LogoutMethod
	if method == "" {
		method = http.MethodDelete
	}

	req, err := http.NewRequestWithContext(ctx, method, e.LogoutURL, nil)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build logout request")
	}

	resp, err := e.httpClient().Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "logout request failed")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return e.checkStatus(resp)
}

func (e *Exchanger[T, R]) postForUser(ctx context.Context, url string, credentials R, extra map[string]any) (*T, error) {
	body, err := encodeBody(credentials, extra)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build auth request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient().Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "auth request failed")
	}
	defer resp.Body.Close()

	if err := e.checkStatus(resp); err != nil {
		io.Copy(io.Discard, resp.Body)
		return nil, err
	}

	user := new(T)
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to decode user payload")
	}
	return user, nil
}

func (e *Exchanger[T, R]) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		if log := e.logger(); log != nil {
			log.Warn("auth endpoint %s returned %d", resp.Request.URL.Path, resp.StatusCode)
		}
		return goerrors.New(
			fmt.Sprintf("auth endpoint returned status %d", resp.StatusCode),
			goerrors.CategoryOperation,
		).WithCode(goerrors.CodeInternal)
	}
}

// encodeBody marshals credentials, then overlays any extra fields.
func encodeBody(credentials any, extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return json.Marshal(credentials)
	}

	raw, err := json.Marshal(credentials)
	if err != nil {
		return nil, err
	}

	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}
