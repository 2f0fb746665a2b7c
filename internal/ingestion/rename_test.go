package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestDateFirstName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"ticks_2025-09-19.json", "2025-09-19_ticks.json", true},
		{"instruments_2025-09-19.json", "2025-09-19_instruments.json", true},
		{"tick_data_2025-09-19.json", "2025-09-19_tick_data.json", true},
		{"2025-09-19_ticks.json", "2025-09-19_ticks.json", true}, // already date-first
		{"ticks_2025-09-19.csv", "", false},
		{"readme.json", "", false},
		{"ticks_notadate.json", "", false},
	}

	for _, tc := range cases {
		got, ok := dateFirstName(tc.in)
		if ok != tc.ok {
			t.Errorf("dateFirstName(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("dateFirstName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDayFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ticks_2025-09-19.json")
	touch(t, dir, "instruments_2025-09-19.json")
	touch(t, dir, "notes.txt")

	if err := NormalizeDayFiles(dir, zap.NewNop()); err != nil {
		t.Fatalf("NormalizeDayFiles failed: %v", err)
	}

	for _, name := range []string{"2025-09-19_ticks.json", "2025-09-19_instruments.json", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "ticks_2025-09-19.json")); !os.IsNotExist(err) {
		t.Error("original file name still present after rename")
	}
}

func TestNormalizeDayFilesSkipsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ticks_2025-09-19.json")
	if err := os.WriteFile(filepath.Join(dir, "2025-09-19_ticks.json"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NormalizeDayFiles(dir, zap.NewNop()); err != nil {
		t.Fatalf("NormalizeDayFiles failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "2025-09-19_ticks.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "keep" {
		t.Error("existing target was overwritten")
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
		t.Fatal(err)
	}
}
