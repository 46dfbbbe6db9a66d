package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimecode(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero", input: 0, expected: "0:00.0"},
		{name: "fraction", input: 1.25, expected: "0:01.3"},
		{name: "minute boundary", input: 60, expected: "1:00.0"},
		{name: "just under a minute rounds up", input: 59.96, expected: "1:00.0"},
		{name: "over an hour", input: 3725, expected: "1:02:05.0"},
		{name: "negative clamps", input: -3, expected: "0:00.0"},
		{name: "nan clamps", input: math.NaN(), expected: "0:00.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimecode(tt.input))
		})
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1, "1x"},
		{2, "2x"},
		{1.5, "1.5x"},
		{0.25, "0.25x"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRate(tt.input))
		})
	}
}

func TestFormatPercentAndSeconds(t *testing.T) {
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "75%", FormatPercent(0.75))
	assert.Equal(t, "100%", FormatPercent(1))
	assert.Equal(t, "2.50s", FormatSeconds(2.5))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "01890a5d", ShortID("01890a5d-ac96-774b-bcce-b302099a8057"))
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{name: "fits", text: "clip", width: 10, expected: "clip"},
		{name: "exact", text: "clip", width: 4, expected: "clip"},
		{name: "cut with ellipsis", text: "longname", width: 5, expected: "long…"},
		{name: "single column", text: "longname", width: 1, expected: "l"},
		{name: "zero width", text: "clip", width: 0, expected: ""},
		{name: "wide runes", text: "视频剪辑", width: 5, expected: "视频…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.text, tt.width)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, GetDisplayWidth(got), max(tt.width, 0))
		})
	}
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "ab   ", PadToWidth("ab", 5))
	assert.Equal(t, 6, GetDisplayWidth(PadToWidth("视频剪辑", 6)))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  hi  ", CenterText("hi", 6))
	assert.Equal(t, " odd  ", CenterText("odd", 6))
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "x", Colorize("x", ColorRed, false))
	assert.Equal(t, ColorRed+"x"+ColorReset, Colorize("x", ColorRed, true))
}
