package authclient_test

import (
	"context"

	authclient "github.com/goliatone/go-auth-client"
	"github.com/stretchr/testify/mock"
)

// TestUser is the user record the tests exchange with the mock ports.
type TestUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// MockExchanger implements authclient.CredentialExchanger
type MockExchanger struct {
	mock.Mock
}

func (m *MockExchanger) DeleteUserSession(ctx context.Context, user *TestUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockExchanger) UserFromCredentials(ctx context.Context, credentials authclient.Credentials) (*TestUser, error) {
	args := m.Called(ctx, credentials)
	if user := args.Get(0); user != nil {
		return user.(*TestUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockExchanger) CreateUserFromCredentials(ctx context.Context, credentials authclient.Credentials, extra map[string]any) (*TestUser, error) {
	args := m.Called(ctx, credentials, extra)
	if user := args.Get(0); user != nil {
		return user.(*TestUser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockResolver implements authclient.UserResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Find(ctx context.Context, userID any) (*TestUser, error) {
	args := m.Called(ctx, userID)
	if user := args.Get(0); user != nil {
		return user.(*TestUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResolver) ParseUser(ctx context.Context, user *TestUser) (*TestUser, error) {
	args := m.Called(ctx, user)
	if parsed := args.Get(0); parsed != nil {
		return parsed.(*TestUser), args.Error(1)
	}
	return nil, args.Error(1)
}

// identityResolver is a resolver stub whose ParseUser is the identity,
// for tests that only care about Find.
func identityResolver(find func(ctx context.Context, userID any) (*TestUser, error)) authclient.UserResolver[TestUser] {
	return authclient.ResolverFuncs[TestUser]{FindFunc: find}
}
