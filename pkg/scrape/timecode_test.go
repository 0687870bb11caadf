package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeCode_Valid(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"0:45", "00:00:45"},
		{"4:33", "00:04:33"},
		{"12:05", "00:12:05"},
		{"1:12:03", "01:12:03"},
		{"00:04:33", "00:04:33"},
		{"99:59:59", "99:59:59"},
		{"0:00", "00:00:00"},
	}

	for _, tc := range cases {
		got, ok := ParseTimeCode(tc.raw)
		require.True(t, ok, "expected %q to parse", tc.raw)
		assert.Equal(t, tc.want, got.String())
	}
}

func TestParseTimeCode_Idempotent(t *testing.T) {
	first, ok := ParseTimeCode("7:08")
	require.True(t, ok)

	second, ok := ParseTimeCode(first.String())
	require.True(t, ok)
	assert.Equal(t, first.String(), second.String())
}

func TestParseTimeCode_Rejects(t *testing.T) {
	cases := []string{
		"",
		"45",
		"1:2:3:4",
		"1:60",      // seconds out of range (2-part reads minutes:seconds)
		"0:61",      // seconds out of range
		"100:00:00", // hours out of range
		"1:60:00",
		"1:00:60",
		"-1:05",
		"1:-5:00",
		"a:30",
		"10:3b",
		"::",
		"1:05:",
	}

	for _, raw := range cases {
		_, ok := ParseTimeCode(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestExtractTimestamps_DedupesAndKeepsOrder(t *testing.T) {
	text := "Jump scare at 0:45 and again at 1:12:03, repeated 0:45"

	got := ExtractTimestamps(text)

	assert.Equal(t, []string{"00:00:45", "01:12:03"}, got)
}

func TestExtractTimestamps_MixedShapes(t *testing.T) {
	text := "Minor scare at 4:33, major at 00:21:05, then 1:02:44 and 4:33 once more"

	got := ExtractTimestamps(text)

	assert.Equal(t, []string{"00:04:33", "00:21:05", "01:02:44"}, got)
}

func TestExtractTimestamps_IgnoresInvalidMarkers(t *testing.T) {
	got := ExtractTimestamps("released in 2017, runtime 2:15:00, score 9:99")

	assert.Equal(t, []string{"02:15:00"}, got)
}

func TestExtractTimestamps_Empty(t *testing.T) {
	assert.Empty(t, ExtractTimestamps("no scares here"))
	assert.Empty(t, ExtractTimestamps(""))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "The Conjuring (2013)", NormalizeSpace("  The \n Conjuring \t (2013)  "))
	assert.Equal(t, "", NormalizeSpace("   \n\t "))
}
