package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestThemeByName(t *testing.T) {
	for _, name := range append(ThemeNames, "", "NEON") {
		if _, err := ThemeByName(name); err != nil {
			t.Errorf("ThemeByName(%q): %v", name, err)
		}
	}
	_, err := ThemeByName("solarized")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("err = %v, want ErrUnknownTheme", err)
	}
}

func TestSetThemeKeepsCurrentOnError(t *testing.T) {
	t.Cleanup(func() { _ = SetTheme("classic") })
	if err := SetTheme("mono"); err != nil {
		t.Fatal(err)
	}
	if err := SetTheme("nope"); err == nil {
		t.Fatal("expected error")
	}
	if Current().Name != "mono" {
		t.Fatalf("current = %q, want mono", Current().Name)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		wantFilled         int
		wantPct            string
	}{
		{0, 0, 10, 0, "  0%"},
		{1, 2, 10, 5, " 50%"},
		{3, 3, 10, 10, "100%"},
		{1, 4, 2, 1, " 25%"}, // width clamps to 5
	}
	for _, tt := range tests {
		got := ProgressBar(tt.done, tt.total, tt.width)
		if n := strings.Count(got, "█"); n != tt.wantFilled {
			t.Errorf("ProgressBar(%d,%d,%d) filled = %d, want %d (%q)", tt.done, tt.total, tt.width, n, tt.wantFilled, got)
		}
		if !strings.HasSuffix(got, tt.wantPct) {
			t.Errorf("ProgressBar(%d,%d,%d) = %q, want suffix %q", tt.done, tt.total, tt.width, got, tt.wantPct)
		}
	}
}

func TestFrameUsesThemeBorder(t *testing.T) {
	mono, _ := ThemeByName("mono")
	out := mono.Frame("hello")
	if !strings.Contains(out, "+") || !strings.Contains(out, "| hello |") {
		t.Fatalf("unexpected frame:\n%s", out)
	}
}
