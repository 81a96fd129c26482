package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		source  QuerySource
		wantErr bool
	}{
		{name: "valid typed query", text: "total revenue this month", source: SourceTyped},
		{name: "valid voice query", text: "show branch breakdown", source: SourceVoice},
		{name: "whitespace is trimmed", text: "  top items  ", source: SourceTyped},
		{name: "empty text rejected", text: "", source: SourceTyped, wantErr: true},
		{name: "whitespace only rejected", text: "   ", source: SourceTyped, wantErr: true},
		{name: "capture sentinel rejected", text: ListeningSentinel, source: SourceVoice, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuery(tt.text, tt.source)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrEmptyQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.source, q.Source)
			assert.NotEmpty(t, q.Text)
			assert.False(t, q.SubmittedAt.IsZero())
		})
	}
}

func TestNewQueryTrimsText(t *testing.T) {
	q, err := NewQuery("  weekly sales  ", SourceTyped)
	require.NoError(t, err)
	assert.Equal(t, "weekly sales", q.Text)
}
