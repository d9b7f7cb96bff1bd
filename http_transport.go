package authclient

import "net/http"

// HeaderAuthorization is the header the decorator writes on requests and
// harvests from responses.
const HeaderAuthorization = "Authorization"

// BearerPrefix is the scheme prepended to outgoing tokens.
const BearerPrefix = "Bearer "

// Decorate returns a clone of req carrying a single
// "Authorization: Bearer <token>" header when a token is held; without a
// token the request is returned untouched.
func (c *Client[T, R]) Decorate(req *http.Request) *http.Request {
	token := c.holder.Token()
	if token == "" {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set(HeaderAuthorization, BearerPrefix+token)
	return out
}

// Observe inspects one completed exchange. A response Authorization header
// feeds the token holder; a 401 fires the unauthorized side channel. The
// error comes back unchanged: observation is side effects only, never
// recovery.
func (c *Client[T, R]) Observe(resp *http.Response, err error) error {
	if resp != nil {
		if header := resp.Header.Get(HeaderAuthorization); header != "" {
			c.holder.SetToken(header)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized.Publish(struct{}{})
		}
	}
	return err
}

// Transport wraps base so every request through it is decorated before
// send and observed exactly once after receipt. A nil base means
// http.DefaultTransport.
func (c *Client[T, R]) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport[T, R]{client: c, base: base}
}

type authTransport[T any, R any] struct {
	client *Client[T, R]
	base   http.RoundTripper
}

func (t *authTransport[T, R]) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(t.client.Decorate(req))
	return resp, t.client.Observe(resp, err)
}

// HTTPClient is a convenience that returns an *http.Client whose transport
// is Transport(base).
func (c *Client[T, R]) HTTPClient(base http.RoundTripper) *http.Client {
	return &http.Client{Transport: c.Transport(base)}
}
