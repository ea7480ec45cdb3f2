package env

import (
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("KODA_TEST_STRING", "value")

	if got := GetEnvOrDefault("KODA_TEST_STRING", "fallback"); got != "value" {
		t.Errorf("expected value, got %s", got)
	}
	if got := GetEnvOrDefault("KODA_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %s", got)
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	cases := map[string]bool{
		"true": true, "1": true, "yes": true, "on": true,
		"false": false, "0": false, "no": false, "off": false,
		"garbage": true, // falls back to default
	}

	for value, want := range cases {
		t.Setenv("KODA_TEST_BOOL", value)
		if got := GetEnvBoolOrDefault("KODA_TEST_BOOL", true); got != want {
			t.Errorf("GetEnvBoolOrDefault(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	t.Setenv("KODA_TEST_INT", "42")
	if got := GetEnvIntOrDefault("KODA_TEST_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	t.Setenv("KODA_TEST_INT", "not-a-number")
	if got := GetEnvIntOrDefault("KODA_TEST_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
}
