//go:build unit

package queries_test

import (
	"testing"
	"time"

	"innkeeper/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2026, 3, 10, 14, 30, 45, 123456000, time.UTC)

	encoded := queries.EncodeAfterCursor(ts, id)
	gotTime, gotID, err := queries.DecodeAfterCursor(encoded)
	require.NoError(t, err)

	if diff := cmp.Diff(ts.UnixMicro(), gotTime.UnixMicro()); diff != "" {
		t.Errorf("timestamp mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(id, gotID); diff != "" {
		t.Errorf("id mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAfterCursorErrors(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "%%%"},
		{name: "wrong version", cursor: "djI6MTIzLWFiYw"},
		{name: "missing separator", cursor: "djE6MTIzNDU2"},
		{name: "bad uuid", cursor: "djE6MTIzNDU2LW5vdC1hLXV1aWQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
