package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityStorageKey(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		want     string
	}{
		{
			name:     "account ID preferred",
			identity: Identity{AccountID: "acct-42", LoginEmail: "owner@tablewise.io"},
			want:     "acct-42",
		},
		{
			name:     "login email fallback",
			identity: Identity{LoginEmail: "owner@tablewise.io"},
			want:     "owner@tablewise.io",
		},
		{
			name:     "fixed fallback when unidentified",
			identity: Identity{},
			want:     FallbackStorageKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.identity.StorageKey())
		})
	}
}
