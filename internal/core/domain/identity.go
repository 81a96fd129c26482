package domain

// FallbackStorageKey is used when no account identifier or login email is
// available. History still works in degraded identity states, at the cost of
// shared visibility among otherwise-unidentified sessions on the same
// machine. Not a security boundary.
const FallbackStorageKey = "authenticated_user"

// Identity is the authenticated identity that owns a history log.
// The zero value is a valid degraded identity.
type Identity struct {
	// AccountID is the stable account identifier, when known.
	AccountID string

	// LoginEmail is the login email, used when AccountID is absent.
	LoginEmail string
}

// StorageKey derives the key under which this identity's history is stored.
// Preference order: account ID, login email, fixed fallback.
func (i Identity) StorageKey() string {
	if i.AccountID != "" {
		return i.AccountID
	}
	if i.LoginEmail != "" {
		return i.LoginEmail
	}
	return FallbackStorageKey
}
