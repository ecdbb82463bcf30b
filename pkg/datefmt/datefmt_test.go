package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	cases := map[string]string{
		"00:30": "12:30 AM",
		"13:15": "1:15 PM",
		"12:00": "12:00 PM",
		"09:05": "9:05 AM",
		"23:59": "11:59 PM",
		"11:59": "11:59 AM",
	}
	for in, want := range cases {
		got, err := FormatTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestFormatTimeRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "noon", "24:00", "7:5", "aa:10", "10"} {
		_, err := FormatTime(in)
		assert.Error(t, err, in)
	}
}

func TestFormatDate(t *testing.T) {
	got, err := FormatDate("2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, "07/03/2024", got)

	got, err = FormatDate("2024-12-25T10:30:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "25/12/2024", got)

	_, err = FormatDate("next tuesday")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "01/02/2025", Format(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))
}
