package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"09:30", false},
		{"00:00", false},
		{"23:59", false},
		{"24:00", true},
		{"9:30", true},
		{"09:60", true},
		{"0930", true},
		{"", true},
		{"half past nine", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeStringMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	next, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", next.String())

	prev, err := ts.AddMinutes(-90)
	require.NoError(t, err)
	assert.Equal(t, "08:00", prev.String())

	// Переход через полночь запрещён
	late, err := NewTimeStringFromString("23:50")
	require.NoError(t, err)
	_, err = late.AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = ts.AddMinutes(-600)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringOrdering(t *testing.T) {
	a, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	b, err := NewTimeStringFromString("17:30")
	require.NoError(t, err)

	assert.True(t, a.IsBefore(b))
	assert.False(t, a.IsAfter(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("10:00"))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan([]byte("11:30")))
	assert.Equal(t, "11:30", ts.String())

	// Колонки типа TIME приходят как time.Time
	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 14, 15, 0, 0, time.UTC)))
	assert.Equal(t, "14:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeStringJSON(t *testing.T) {
	ts, err := NewTimeStringFromString("12:00")
	require.NoError(t, err)

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"12:00"`, string(data))

	var parsed TimeString
	require.NoError(t, json.Unmarshal([]byte(`"15:45"`), &parsed))
	assert.Equal(t, "15:45", parsed.String())

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &parsed))
}
