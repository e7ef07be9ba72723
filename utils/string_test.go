package utils

import (
	"strings"
	"testing"
)

func TestCompressAndDecompressString(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "Short string",
			text: "Hello, world!",
		},
		{
			name: "Catalog JSON payload",
			text: `{"id":"4Z8W4fKeB5YxbusRsdQVPb","name":"Radiohead","popularity":82,"followers":{"total":1000000}}`,
		},
		{
			name: "Empty string",
			text: "",
		},
		{
			name: "Repetitive tracklist",
			text: strings.Repeat(`{"name":"Track","duration_ms":254000},`, 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := CompressString(tt.text)
			if err != nil {
				t.Fatalf("CompressString error: %v", err)
			}

			decompressed, err := DecompressString(compressed)
			if err != nil {
				t.Fatalf("DecompressString error: %v", err)
			}

			if decompressed != tt.text {
				t.Errorf("Round trip mismatch: got %q, want %q", decompressed, tt.text)
			}
		})
	}
}

func TestCompressedIsSmallerForRepetitiveInput(t *testing.T) {
	text := strings.Repeat("the same line over and over ", 100)

	compressed, err := CompressString(text)
	if err != nil {
		t.Fatalf("CompressString error: %v", err)
	}
	if len(compressed) >= len(text) {
		t.Errorf("Expected compression to shrink %d bytes, got %d", len(text), len(compressed))
	}
}

func TestDecompressInvalidInput(t *testing.T) {
	if _, err := DecompressString("not base64 gzip"); err == nil {
		t.Error("Expected an error for invalid input")
	}
}
