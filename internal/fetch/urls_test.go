package fetch

import "testing"

func TestResourceURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"test_file.bin", "https://etfmatcher.com/data/test_file.bin"},
		{"/test_file.bin", "https://etfmatcher.com/data/test_file.bin"},
		{"v5.SMA-LSTM-STACKS.bin", "https://etfmatcher.com/data/v5.SMA-LSTM-STACKS.bin"},
		{"nested/path.bin", "https://etfmatcher.com/data/nested/path.bin"},
	}
	for _, c := range cases {
		if got := ResourceURL(c.in); got != c.want {
			t.Fatalf("ResourceURL(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestManifestURL(t *testing.T) {
	want := "https://etfmatcher.com/data/ticker_vector_configs.toml"
	if got := ManifestURL(); got != want {
		t.Fatalf("ManifestURL mismatch: got %q want %q", got, want)
	}
}

func TestSymbolMapURL(t *testing.T) {
	want := "https://etfmatcher.com/data/ticker_symbol_map.flatbuffers.bin"
	if got := SymbolMapURL(); got != want {
		t.Fatalf("SymbolMapURL mismatch: got %q want %q", got, want)
	}
}

func TestClientResourceURL_SingleSeparator(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://example.com/data"})
	if got := c.ResourceURL("x.bin"); got != "http://example.com/data/x.bin" {
		t.Fatalf("missing separator not inserted: %q", got)
	}
	c = NewClient(Options{BaseURL: "http://example.com/data/"})
	if got := c.ResourceURL("/x.bin"); got != "http://example.com/data/x.bin" {
		t.Fatalf("separator doubled: %q", got)
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com/data.bin", true},
		{"http://example.com/data.bin", true},
		{"dataset.bin", false},
		{"httpish-name.bin", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsAbsoluteURL(c.in); got != c.want {
			t.Fatalf("IsAbsoluteURL(%q)=%v want %v", c.in, got, c.want)
		}
	}
}
