package authclient

import "context"

// Client composes the token holder, user session, activation gate, and the
// two host-supplied ports. T is the host's user record, R its credential
// payload.
//
// There is no single-flight guard across concurrent Attempt, Register, and
// Logout calls: each proceeds independently and the last one to store a
// user wins. Hosts that need coalescing wrap the client with their own
// mutex.
type Client[T any, R any] struct {
	holder       *TokenHolder
	session      *UserSession[T]
	gate         *ActivationGate
	exchanger    CredentialExchanger[T, R]
	resolver     UserResolver[T]
	unauthorized *Subject[struct{}]
	logger       Logger
}

// Option configures a Client at construction time.
type Option[T any, R any] func(*Client[T, R])

// WithExchanger wires the credential exchanger port. Without it Attempt,
// Register, and Logout fail with ErrMissingBackend.
func WithExchanger[T any, R any](exchanger CredentialExchanger[T, R]) Option[T, R] {
	return func(c *Client[T, R]) {
		c.exchanger = exchanger
	}
}

// WithResolver wires the user resolver port used by Activate to restore a
// prior session and as the ParseUser normalization hook.
func WithResolver[T any, R any](resolver UserResolver[T]) Option[T, R] {
	return func(c *Client[T, R]) {
		c.resolver = resolver
	}
}

func WithLogger[T any, R any](logger Logger) Option[T, R] {
	return func(c *Client[T, R]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an unactivated Client. Call Activate once at startup, with
// whatever user id and token the host persisted, before relying on
// RequiredUser or Check.
func New[T any, R any](opts ...Option[T, R]) *Client[T, R] {
	gate := NewActivationGate()
	c := &Client[T, R]{
		holder:       NewTokenHolder(),
		session:      NewUserSession[T](gate),
		gate:         gate,
		unauthorized: NewSubject[struct{}](),
		logger:       defLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session.WithLogger(c.logger)
	return c
}

// Tokens returns the token holder. Transports read it on every outbound
// request and write response headers back into it.
func (c *Client[T, R]) Tokens() *TokenHolder {
	return c.holder
}

// Session returns the user session core.
func (c *Client[T, R]) Session() *UserSession[T] {
	return c.session
}

// Gate returns the activation gate.
func (c *Client[T, R]) Gate() *ActivationGate {
	return c.gate
}

// OnUnauthorized subscribes to the side channel fired when a transport
// observes an HTTP 401 (or its gRPC equivalent).
func (c *Client[T, R]) OnUnauthorized(fn func()) Subscription {
	return c.unauthorized.Subscribe(func(struct{}) { fn() })
}

// NotifyUnauthorized fires the unauthorized side channel. Transports call
// this; hosts with custom pipelines may call it directly.
func (c *Client[T, R]) NotifyUnauthorized() {
	c.unauthorized.Publish(struct{}{})
}

// Activate restores (or explicitly clears) prior session state and opens
// the activation gate. A non-empty token seeds the token holder first. A
// nil userID clears the user and completes; doing that a second time is a
// programmer error (ErrReactivation). A non-nil userID is resolved through
// the UserResolver; the gate opens whether or not resolution succeeds, and
// a resolution failure is returned to the caller with no user set.
func (c *Client[T, R]) Activate(ctx context.Context, userID any, token string) error {
	if token != "" {
		c.holder.SetToken(token)
	}

	if userID == nil {
		if c.gate.Activated() {
			return ErrReactivation
		}
		c.session.SetUser(nil)
		c.gate.Open()
		return nil
	}

	if c.resolver == nil {
		return ErrMissingResolver
	}

	user, err := c.resolver.Find(ctx, userID)
	if err != nil {
		// activation completes exactly once regardless of resolution
		c.gate.Open()
		c.logger.Error("activation user resolution failed: %v", err)
		return err
	}

	c.session.SetUser(user)
	c.gate.Open()
	return nil
}

// Attempt exchanges credentials for a user (login) and stores it.
// Exchanger errors propagate unchanged and leave the session untouched.
func (c *Client[T, R]) Attempt(ctx context.Context, credentials R) (*T, error) {
	if c.exchanger == nil {
		return nil, ErrMissingBackend
	}
	if err := validateCredentials(credentials); err != nil {
		return nil, err
	}

	user, err := c.exchanger.UserFromCredentials(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return c.storeUser(ctx, user)
}

// Register creates a user from credentials and stores it. The extra map
// is passed through to the exchanger untouched.
func (c *Client[T, R]) Register(ctx context.Context, credentials R, extra map[string]any) (*T, error) {
	if c.exchanger == nil {
		return nil, ErrMissingBackend
	}
	if err := validateCredentials(credentials); err != nil {
		return nil, err
	}

	user, err := c.exchanger.CreateUserFromCredentials(ctx, credentials, extra)
	if err != nil {
		return nil, err
	}
	return c.storeUser(ctx, user)
}

// Logout invalidates the session server-side, then clears the user. The
// token axis is independent and is left alone; hosts that also want the
// token gone call Tokens().ClearToken().
func (c *Client[T, R]) Logout(ctx context.Context) error {
	if c.exchanger == nil {
		return ErrMissingBackend
	}

	if err := c.exchanger.DeleteUserSession(ctx, c.session.User()); err != nil {
		return err
	}
	c.session.SetUser(nil)
	return nil
}

// storeUser runs the resolver's ParseUser normalization hook, then stores
// the result. Without a resolver the hook is identity.
func (c *Client[T, R]) storeUser(ctx context.Context, user *T) (*T, error) {
	if c.resolver != nil {
		parsed, err := c.resolver.ParseUser(ctx, user)
		if err != nil {
			return nil, err
		}
		user = parsed
	}
	c.session.SetUser(user)
	return user, nil
}

func validateCredentials(credentials any) error {
	if v, ok := credentials.(Validatable); ok {
		return v.Validate()
	}
	return nil
}
