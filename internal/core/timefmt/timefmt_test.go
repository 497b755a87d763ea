package timefmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{125, "02:05"},
		{-1, "-00:01"},
		{-61, "-01:01"},
		{3661, "61:01"},
		{6000, "100:00"},
		{-6001, "-100:01"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestFormatExtremes(t *testing.T) {
	assert.Equal(t, "-153722867280912930:08", Format(math.MinInt))
	assert.Equal(t, "153722867280912930:07", Format(math.MaxInt))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, Positive, StatusOf(0))
	assert.Equal(t, Positive, StatusOf(1))
	assert.Equal(t, Negative, StatusOf(-1))
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "🟢", StatusOf(10).Glyph())
	assert.Equal(t, "🔴", StatusOf(-10).Glyph())
	assert.Equal(t, "negative", Negative.String())
}
