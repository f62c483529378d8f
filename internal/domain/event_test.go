package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Validate(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *Event
		wantErr bool
	}{
		{"one slot", NewEvent("新宿", []time.Time{t1}, "o", "p", t1), false},
		{"three slots", NewEvent("新宿", []time.Time{t1, t1, t1}, "o", "p", t1), false},
		{"no slots", NewEvent("新宿", nil, "o", "p", t1), true},
		{"four slots", NewEvent("新宿", []time.Time{t1, t1, t1, t1}, "o", "p", t1), true},
		{"blank station", NewEvent("   ", []time.Time{t1}, "o", "p", t1), true},
		{"station at limit", NewEvent(strings.Repeat("駅", MaxStationNameLength), []time.Time{t1}, "o", "p", t1), false},
		{"station over limit", NewEvent(strings.Repeat("a", MaxStationNameLength+1), []time.Time{t1}, "o", "p", t1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
		})
	}
}

// prefixHasher is a reversible AccessTokenHasher for tests.
type prefixHasher struct{}

func (prefixHasher) Hash(token string) (string, error) { return "h:" + token, nil }

func (prefixHasher) Verify(hash, token string) bool { return hash == "h:"+token }

func TestEvent_Authorize(t *testing.T) {
	h := prefixHasher{}
	ev := &Event{ID: "ev-1", OrganizerTokenHash: "h:org-456", ParticipantTokenHash: "h:abc-123"}

	tests := []struct {
		name      string
		token     string
		wantWrite bool
		wantRead  bool
	}{
		{"participant token", "abc-123", true, true},
		{"participant token upper case", "ABC-123", true, true},
		{"participant token padded", " abc-123 ", true, true},
		{"organizer token", "org-456", false, true},
		{"organizer token upper case", "ORG-456", false, true},
		{"unknown token", "XYZ", false, false},
		{"empty token", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantWrite, ev.Authorize(h, tt.token))
			assert.Equal(t, tt.wantRead, ev.AuthorizeRead(h, tt.token))
		})
	}
}

func TestEvent_Authorize_EmptyStoredHash(t *testing.T) {
	ev := &Event{ID: "ev-1"}
	h := prefixHasher{}
	assert.False(t, ev.Authorize(h, ""))
	assert.False(t, ev.AuthorizeRead(h, "abc"))
}
