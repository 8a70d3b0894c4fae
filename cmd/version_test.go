package cmd

import "testing"

func TestVersionLine(t *testing.T) {
	restore := func(v, c, d string) {
		version, commit, buildDate = v, c, d
	}
	defer restore(version, commit, buildDate)

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"dev build", "dev", "", "", "etfv dev"},
		{"commit only", "1.2.0", "a1b2c3d", "", "etfv 1.2.0 (a1b2c3d)"},
		{"full stamp", "1.2.0", "a1b2c3d", "2026-08-30", "etfv 1.2.0 (a1b2c3d, 2026-08-30)"},
		{"date only", "1.2.0", "", "2026-08-30", "etfv 1.2.0 (2026-08-30)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(tt.version, tt.commit, tt.date)
			if got := versionLine(); got != tt.want {
				t.Fatalf("versionLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
