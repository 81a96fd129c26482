package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStopWithoutStart(t *testing.T) {
	r := New()

	_, err := r.Stop()
	require.Error(t, err)
}

func TestDoubleStartRejected(t *testing.T) {
	r := New()
	if err := r.Start(context.Background()); err != nil {
		t.Skipf("no recording utility on this host: %v", err)
	}
	defer r.Stop() //nolint:errcheck

	err := r.Start(context.Background())
	require.Error(t, err)
}
