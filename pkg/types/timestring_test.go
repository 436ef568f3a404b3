package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "simple", input: "09:30", want: "09:30"},
		{name: "with seconds", input: "09:30:00", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "non numeric hours", input: "ab:30", wantErr: true},
		{name: "non numeric minutes", input: "09:xx", wantErr: true},
		{name: "missing parts", input: "0930", wantErr: true},
		{name: "hours out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 645, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start TimeString
		delta int
		want  TimeString
	}{
		{name: "within hour", start: "10:00", delta: 30, want: "10:30"},
		{name: "across hour", start: "10:45", delta: 30, want: "11:15"},
		{name: "negative delta", start: "10:00", delta: -90, want: "08:30"},
		{name: "wraps past midnight", start: "23:30", delta: 60, want: "00:30"},
		{name: "wraps below zero", start: "00:15", delta: -30, want: "23:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid value", func(t *testing.T) {
		_, err := TimeString("garbage").AddMinutes(10)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("13:00").IsAfter("12:59"))
	assert.False(t, TimeString("13:00").IsAfter("13:00"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 9, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:00:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
