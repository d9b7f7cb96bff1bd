// Package bunstore persists the session snapshot a host needs to replay
// into Activate at startup: the last known user id and bearer token. It is
// deliberately not a session store; the single row it keeps is best-effort
// replay material, written at shutdown and read once at boot.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// ErrNoSnapshot is returned by Load when nothing was saved.
var ErrNoSnapshot = goerrors.New("no session snapshot saved", goerrors.CategoryNotFound).
	WithTextCode("auth_client_no_snapshot").
	WithCode(goerrors.CodeNotFound)

// Snapshot is the single persisted row.
type Snapshot struct {
	bun.BaseModel `bun:"table:auth_session_snapshot,alias:snap"`

	ID      int64     `bun:"id,pk"`
	UserID  string    `bun:"user_id,notnull"`
	Token   string    `bun:"token,notnull"`
	SavedAt time.Time `bun:"saved_at,notnull"`
}

type Store struct {
	db *bun.DB
}

// New wraps an existing bun.DB. Call Init before first use.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Open opens (or creates) a SQLite database at dsn and initializes the
// snapshot table.
func Open(ctx context.Context, dsn string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open snapshot database")
	}

	store := New(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Init creates the snapshot table when missing.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Snapshot)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create snapshot table")
	}
	return nil
}

// Save overwrites the snapshot with the given user id and token.
func (s *Store) Save(ctx context.Context, userID, token string) error {
	snapshot := &Snapshot{
		ID:      1,
		UserID:  userID,
		Token:   token,
		SavedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(snapshot).
		On("CONFLICT (id) DO UPDATE").
		Set("user_id = EXCLUDED.user_id").
		Set("token = EXCLUDED.token").
		Set("saved_at = EXCLUDED.saved_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to save session snapshot")
	}
	return nil
}

// Load returns the saved user id and token, or ErrNoSnapshot.
func (s *Store) Load(ctx context.Context) (userID, token string, err error) {
	var snapshot Snapshot
	err = s.db.NewSelect().
		Model(&snapshot).
		Where("id = ?", 1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrNoSnapshot
		}
		return "", "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load session snapshot")
	}
	return snapshot.UserID, snapshot.Token, nil
}

// Clear removes the snapshot. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*Snapshot)(nil)).
		Where("id = ?", 1).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear session snapshot")
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
