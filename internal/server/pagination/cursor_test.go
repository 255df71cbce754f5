package pagination

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2023, time.May, 15, 10, 30, 0, 123456789, time.UTC)
	id := "article-with,comma"

	cursor := EncodeCursor(ts, id)

	gotTS, gotID, err := DecodeCursor(cursor)
	if err != nil {
		t.Fatalf("DecodeCursor failed: %v", err)
	}
	if !gotTS.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", gotTS, ts)
	}
	if gotID != id {
		t.Errorf("id = %q, want %q", gotID, id)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"no separator", "bm8tc2VwYXJhdG9y"}, // "no-separator"
		{"empty id", EncodeCursor(time.Now(), "")},
		{"bad timestamp", "bm90LWEtdGltZSxpZA=="}, // "not-a-time,id"
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeCursor(tt.cursor); err == nil {
				t.Errorf("DecodeCursor(%q) succeeded, want error", tt.cursor)
			}
		})
	}
}
