package authclient

import "strings"

// TokenHolder owns the current bearer token. The token is opaque: no
// format validation happens here beyond scheme stripping on SetToken.
type TokenHolder struct {
	token *Cell[string]
}

func NewTokenHolder() *TokenHolder {
	return &TokenHolder{token: NewCell[string]()}
}

// Token returns the current token, or the empty string when none is held.
func (h *TokenHolder) Token() string {
	return h.token.Get()
}

// SetToken stores raw as the current token. Values that carry a scheme
// prefix ("Bearer abc") are split on whitespace and the last segment is
// kept; values without whitespace are stored as-is. Every call publishes
// to subscribers, reassignments of the same value included.
func (h *TokenHolder) SetToken(raw string) {
	segments := strings.Fields(raw)
	if len(segments) > 0 {
		raw = segments[len(segments)-1]
	}
	h.token.Set(raw)
}

// ClearToken drops the current token and publishes the empty value.
func (h *TokenHolder) ClearToken() {
	h.token.Set("")
}

// OnToken subscribes to token assignments.
func (h *TokenHolder) OnToken(fn func(string)) Subscription {
	return h.token.Subscribe(fn)
}
