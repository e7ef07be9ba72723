package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatDuration renders a millisecond count as minutes:seconds.
func FormatDuration(ms int) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatScore scales a fractional 0..1 score to a percentage rounded to two
// decimals, with trailing zeros trimmed ("82.5", not "82.50").
func FormatScore(v float64) string {
	return trimFloat(math.Round(v*100*100) / 100)
}

// FormatLoudness rounds a loudness value to two decimals.
func FormatLoudness(v float64) string {
	return trimFloat(math.Round(v*100) / 100)
}

// FormatTempo rounds a tempo to the nearest whole BPM.
func FormatTempo(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// keyNotation maps pitch-class numbers to note names.
var keyNotation = []string{"C", "C#/Db", "D", "D#/Eb", "E/Fb", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B"}

// KeySignature renders a pitch class and mode flag as e.g. "C#/Db Major".
func KeySignature(key, mode int) string {
	note := "?"
	if key >= 0 && key < len(keyNotation) {
		note = keyNotation[key]
	}
	if mode == 1 {
		return note + " Major"
	}
	return note + " Minor"
}

// joinArtists renders a comma-separated artist name list.
func joinArtists(names []string) string {
	return strings.Join(names, ", ")
}

// bannerDescription centers a label between '=' bars up to a fixed width,
// matching the artist page header style.
func bannerDescription(label string) string {
	const width = 56
	remaining := width - len(label) - 2
	if remaining <= 0 {
		return "[" + label + "]"
	}
	bars := strings.Repeat("=", remaining/2)
	return bars + "[" + label + "]" + bars
}
