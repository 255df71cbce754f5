package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("READER_TEST_STR", "from-env")
	if got := GetEnvString("READER_TEST_STR", "default"); got != "from-env" {
		t.Errorf("got %q, want env value", got)
	}
	if got := GetEnvString("READER_TEST_STR_UNSET", "default"); got != "default" {
		t.Errorf("got %q, want default", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("READER_TEST_INT", "42")
	if got := GetEnvInt("READER_TEST_INT", 7); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	t.Setenv("READER_TEST_INT", "not-a-number")
	if got := GetEnvInt("READER_TEST_INT", 7); got != 7 {
		t.Errorf("got %d, want default on parse failure", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"90s", 90 * time.Second},
		{"2h", 2 * time.Hour},
		{"15", 15 * time.Minute}, // bare numbers are minutes
		{"bogus", 30 * time.Minute},
	}
	for _, tt := range tests {
		t.Setenv("READER_TEST_DUR", tt.value)
		if got := GetEnvDuration("READER_TEST_DUR", 30*time.Minute); got != tt.want {
			t.Errorf("GetEnvDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestGetEnvLogLevel(t *testing.T) {
	t.Setenv("READER_TEST_LEVEL", "debug")
	if got := GetEnvLogLevel("READER_TEST_LEVEL", zerolog.InfoLevel); got != zerolog.DebugLevel {
		t.Errorf("got %v, want debug", got)
	}
	t.Setenv("READER_TEST_LEVEL", "nonsense")
	if got := GetEnvLogLevel("READER_TEST_LEVEL", zerolog.InfoLevel); got != zerolog.InfoLevel {
		t.Errorf("got %v, want default on parse failure", got)
	}
}
