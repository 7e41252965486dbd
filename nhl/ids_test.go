package nhl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameID(t *testing.T) {
	id, err := ParseGameID("2023020204")
	require.NoError(t, err)
	assert.Equal(t, GameID(2023020204), id)
	assert.Equal(t, "2023020204", id.String())

	for _, input := range []string{"", "abc", "0", "-2023020204", "2023-02-04", "1e9"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseGameID(input)
			assert.Error(t, err)
		})
	}
}

func TestGameID_Season(t *testing.T) {
	tests := []struct {
		id     GameID
		want   int
		wantOK bool
	}{
		{2023020204, 2023, true},
		{2024030111, 2024, true},
		{1917020001, 1917, true},
		{12345, 0, false},
		{999_999_999, 0, false},
		{10_000_000_000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			season, ok := tt.id.Season()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, season.StartYear)
			}
		})
	}
}
