package render

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		want string
	}{
		{"Under a minute", 45000, "0:45"},
		{"Exact minute", 60000, "1:00"},
		{"Typical track", 254000, "4:14"},
		{"Zero-padded seconds", 61000, "1:01"},
		{"Long track", 3723000, "62:03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.ms); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"Whole number", 0.5, "50"},
		{"Two decimals", 0.123, "12.3"},
		{"Trailing zeros trimmed", 0.825, "82.5"},
		{"Zero", 0, "0"},
		{"Full score", 1, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatScore(tt.score); got != tt.want {
				t.Errorf("FormatScore(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestFormatTempo(t *testing.T) {
	if got := FormatTempo(117.5); got != "118" {
		t.Errorf("FormatTempo(117.5) = %q, want 118", got)
	}
	if got := FormatTempo(89.2); got != "89" {
		t.Errorf("FormatTempo(89.2) = %q, want 89", got)
	}
}

func TestKeySignature(t *testing.T) {
	tests := []struct {
		key  int
		mode int
		want string
	}{
		{0, 1, "C Major"},
		{1, 0, "C#/Db Minor"},
		{9, 1, "A Major"},
		{-1, 1, "? Major"},
	}

	for _, tt := range tests {
		if got := KeySignature(tt.key, tt.mode); got != tt.want {
			t.Errorf("KeySignature(%d, %d) = %q, want %q", tt.key, tt.mode, got, tt.want)
		}
	}
}

func TestChunkLines(t *testing.T) {
	lines := make([]string, 25)
	for i := range lines {
		lines[i] = "line"
	}

	chunks := ChunkLines(lines, 8, 10)
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 8 || len(chunks[1]) != 10 || len(chunks[2]) != 7 {
		t.Errorf("Unexpected chunk sizes: %d, %d, %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestChunkLinesSinglePage(t *testing.T) {
	chunks := ChunkLines([]string{"a", "b"}, 4, 6)
	if len(chunks) != 1 || len(chunks[0]) != 2 {
		t.Errorf("Expected one chunk of 2, got %v", chunks)
	}
}

func TestChunkLinesEmpty(t *testing.T) {
	if chunks := ChunkLines(nil, 8, 10); chunks != nil {
		t.Errorf("Expected nil for empty input, got %v", chunks)
	}
}
