package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
)

// CurrentSchemaVersion is the persisted-record schema written by Encode.
const CurrentSchemaVersion = 1

// ErrSchemaVersion is returned by Decode for records written by an
// incompatible schema.
var ErrSchemaVersion = errors.New("unsupported session schema version")

// ErrCorruptRecord is returned by Decode when the record cannot be parsed or
// fails semantic validation.
var ErrCorruptRecord = errors.New("corrupt session record")

// persistedState is the durable subset of an authenticated session. Status
// and Reason are deliberately not persisted: a restored session is either
// authenticated or anonymous, never mid-attempt or errored.
type persistedState struct {
	Version  int             `json:"version"`
	Token    string          `json:"token"`
	Identity Identity        `json:"identity"`
	Role     permission.Role `json:"role"`
}

// Encode serializes an authenticated session for persistence. Only
// authenticated sessions are encodable; every other status has nothing worth
// surviving a restart.
func Encode(s Session) ([]byte, error) {
	if s.Status != StatusAuthenticated || s.Identity == nil {
		return nil, fmt.Errorf("%w: only authenticated sessions are persisted", ErrCorruptRecord)
	}

	return json.Marshal(persistedState{
		Version:  CurrentSchemaVersion,
		Token:    s.Token,
		Identity: *s.Identity,
		Role:     s.Role,
	})
}

// Decode parses a persisted record back into an authenticated session.
func Decode(data []byte) (Session, error) {
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	if state.Version != CurrentSchemaVersion {
		return Session{}, fmt.Errorf("%w: %d", ErrSchemaVersion, state.Version)
	}
	if state.Identity.ID == "" {
		return Session{}, fmt.Errorf("%w: missing identity", ErrCorruptRecord)
	}
	if !state.Role.Valid() {
		return Session{}, fmt.Errorf("%w: role %q", ErrCorruptRecord, state.Role)
	}

	identity := state.Identity
	return Session{
		Identity: &identity,
		Role:     state.Role,
		Token:    state.Token,
		Status:   StatusAuthenticated,
	}, nil
}
