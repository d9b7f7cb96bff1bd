package authclient

import (
	"fmt"

	"github.com/google/uuid"
)

// UserRecord is a ready-made user type for hosts that have no richer
// record of their own. The client is generic and never requires it.
type UserRecord struct {
	ID       string         `json:"id,omitempty"`
	Email    string         `json:"email,omitempty"`
	Username string         `json:"username,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (u *UserRecord) GetUserID() string {
	return u.ID
}

func (u *UserRecord) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(u.ID)
}

func (u *UserRecord) String() string {
	return fmt.Sprintf("UserRecord(id=%s email=%s username=%s)", u.ID, u.Email, u.Username)
}
