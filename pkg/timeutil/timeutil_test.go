package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

func TestParseWindowDefault(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, Window{Days: 7}, w)
	assert.Equal(t, "1w", w.String())
}

func TestParseWindowComposite(t *testing.T) {
	w, err := ParseWindow("1y 2months 10d")
	require.NoError(t, err)
	assert.Equal(t, Window{Years: 1, Months: 2, Days: 10}, w)
	assert.Equal(t, "1y2m10d", w.String())
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0d"} {
		_, err := ParseWindow(in)
		assert.Error(t, err, in)
	}
}

func TestWindowSince(t *testing.T) {
	w, _ := ParseWindow("1w")
	assert.Equal(t, "2024-03-04", FormatDay(w.Since(now)))

	w, _ = ParseWindow("1m")
	assert.Equal(t, "2024-02-11", FormatDay(w.Since(now)))
}

func TestParseDay(t *testing.T) {
	cases := map[string]string{
		"":           "2024-03-10",
		"today":      "2024-03-10",
		"Yesterday":  "2024-03-09",
		"2023-12-25": "2023-12-25",
		"3/9":        "2024-03-09",
		"12/31":      "2023-12-31",
		"1/5/2022":   "2022-01-05",
	}
	for in, want := range cases {
		got, err := ParseDay(in, now)
		require.NoError(t, err, in)
		assert.Equal(t, want, FormatDay(got), in)
	}

	_, err := ParseDay("next tuesday", now)
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", FormatDay(m))

	m, err = ParseMonth("2023-11", now)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-01", FormatDay(m))

	_, err = ParseMonth("Nov", now)
	assert.Error(t, err)
}
