package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2025-01-01", "2025-01-01 00:00:00", "2025-01-01T00:00:00", "2025-01-01T00:00:00Z", "2025-01-01T02:00:00+02:00"} {
		got, err := parseDate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s parsed as %v", in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	for _, in := range []string{"", "01/01/2025", "2025-13-01", "tomorrow"} {
		_, err := parseDate(in)
		assert.Error(t, err, in)
	}
}

func TestPersonNamePattern(t *testing.T) {
	for _, ok := range []string{"Alice", "Mary Ann", "O'Neil", "Smith, Jr.", "Bob (admin)"} {
		assert.True(t, personNameRe.MatchString(ok), ok)
	}
	for _, bad := range []string{"R2D2", "Anne-Marie", "Zoë", "a@b"} {
		assert.False(t, personNameRe.MatchString(bad), bad)
	}
}

func TestHasLetterAndDigit(t *testing.T) {
	assert.True(t, hasLetterAndDigit("abc12345"))
	assert.False(t, hasLetterAndDigit("abcdefgh"))
	assert.False(t, hasLetterAndDigit("12345678"))
	assert.False(t, hasLetterAndDigit("ééééé123"))
}

func TestValidateProject_TrimsNameOnly(t *testing.T) {
	in := ProjectInput{Name: "  Launch  ", Description: "  spaced  ", DueDate: "2025-01-01", Status: "completed"}
	require.NoError(t, ValidateProject(&in))
	assert.Equal(t, "Launch", in.Name)
	assert.Equal(t, "  spaced  ", in.Description)
}

func TestValidateProject_ImageURLLimit(t *testing.T) {
	in := ProjectInput{Name: "Launch", DueDate: "2025-01-01", Status: "completed", ImageURL: string(make([]byte, 201))}
	err := ValidateProject(&in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "imageUrl must be at most 200 characters", err.Error())
}

func TestDateValue_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		body string
		want DateValue
	}{
		{`"2025-01-01"`, "2025-01-01"},
		{`null`, ""},
		{`1735689600000`, "2025-01-01T00:00:00Z"},
		{`1735689600000.0`, "2025-01-01T00:00:00Z"},
		{`true`, "true"},
		{`{"y":2025}`, `{"y":2025}`},
	}
	for _, tc := range cases {
		var in ProjectInput
		require.NoError(t, json.Unmarshal([]byte(`{"dueDate":`+tc.body+`}`), &in), tc.body)
		assert.Equal(t, tc.want, in.DueDate, tc.body)
	}
}

func TestValidateProject_EpochDueDate(t *testing.T) {
	var in ProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Launch","dueDate":1735689600000,"status":"completed"}`), &in))
	require.NoError(t, ValidateProject(&in))

	got, err := parseDate(string(in.DueDate))
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidateProject_NonDateDueDate(t *testing.T) {
	var in ProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Launch","dueDate":true,"status":"completed"}`), &in))
	err := ValidateProject(&in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Due date must be a valid date", err.Error())
}

func TestCanonicalID(t *testing.T) {
	id := "1a2b3c4d-5e6f-4a1b-8c2d-3e4f5a6b7c8d"
	assert.Equal(t, id, canonicalID(id))
	assert.Equal(t, id, canonicalID(" 1A2B3C4D-5E6F-4A1B-8C2D-3E4F5A6B7C8D "))
	assert.Equal(t, id, canonicalID("1a2b3c4d5e6f4a1b8c2d3e4f5a6b7c8d"))
	assert.Equal(t, "legacy", canonicalID(" legacy "))
}
