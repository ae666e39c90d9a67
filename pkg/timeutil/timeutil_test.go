package timeutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"00:00:00.000", 0},
		{"00:00:02.500", 2.5},
		{"01:23:45.678", 5025.678},
		{"00:59:59.999", 3599.999},
		{"123:00:00.000", 442800},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseTimestampBounds(t *testing.T) {
	tests := []struct {
		in    string
		field string
		value int64
	}{
		{"00:60:00.000", "minutes", 60},
		{"00:61:00.000", "minutes", 61},
		{"00:00:60.000", "seconds", 60},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			_, err := ParseTimestamp(tc.in)
			require.Error(t, err)

			var tsErr *TimestampError
			require.True(t, errors.As(err, &tsErr))
			assert.Equal(t, tc.field, tsErr.Field)
			assert.Equal(t, tc.value, tsErr.Value)
			assert.Contains(t, err.Error(), tc.field+" must be <")
		})
	}
}

func TestParseTimestampMalformed(t *testing.T) {
	for _, in := range []string{"", "0:00:00.000", "00:00:00", "00:00:00,000", "aa:bb:cc.ddd", " 00:00:00.000", "00:00:00.1000", "00:00:00.0999", "00:000:05.000", "00:00:005.000"} {
		_, err := ParseTimestamp(in)
		var tsErr *TimestampError
		require.True(t, errors.As(err, &tsErr), "input %q", in)
		assert.Equal(t, "format", tsErr.Field)
	}
}

func TestTimestampErrorLocation(t *testing.T) {
	err := &TimestampError{Text: "00:61:00.000", Field: "minutes", Value: 61, File: "talk.txt", Line: 4}
	assert.Equal(t, "invalid timestamp '00:61:00.000': minutes must be < 60 (got 61) (talk.txt line 4)", err.Error())
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00.000"},
		{2.5, "00:00:02.500"},
		{3661.5, "01:01:01.500"},
		{3599.999, "00:59:59.999"},
		{36000, "10:00:00.000"},
		{1.9999, "00:00:02.000"},
		{59.9999, "00:01:00.000"},
		{3599.9996, "01:00:00.000"},
		{0.0005, "00:00:00.001"},
		{-3, "00:00:00.000"},
		{442800, "123:00:00.000"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatTimestamp(tc.in), "FormatTimestamp(%v)", tc.in)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, text := range []string{"00:00:00.000", "00:00:00.001", "00:12:34.567", "09:59:59.999", "100:00:00.010"} {
		secs, err := ParseTimestamp(text)
		require.NoError(t, err)
		assert.Equal(t, text, FormatTimestamp(secs))
	}

	for ms := int64(0); ms < 200000; ms += 997 {
		secs := float64(ms) / 1000
		back, err := ParseTimestamp(FormatTimestamp(secs))
		require.NoError(t, err)
		assert.InDelta(t, secs, back, 0.0005)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:01:30", FormatTime(90))
	assert.Equal(t, "1:11:22", FormatTime(4282.9))
	assert.Equal(t, "0:00:00", FormatTime(-1))
}

func TestParseTimestampHourLimit(t *testing.T) {
	for _, in := range []string{"9999999999999999:00:00.000", "99999999999999999999:00:00.000"} {
		_, err := ParseTimestamp(in)
		var tsErr *TimestampError
		require.True(t, errors.As(err, &tsErr), in)
		assert.Equal(t, "hours", tsErr.Field)
		assert.Contains(t, err.Error(), "hours must be <=")
	}

	got, err := ParseTimestamp(fmt.Sprintf("%d:00:00.000", MaxHours))
	require.NoError(t, err)
	assert.Greater(t, got, 0.0)
}
