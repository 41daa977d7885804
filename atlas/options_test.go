package atlas

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultBuildOptions(t *testing.T) {
	opts := DefaultBuildOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("default options must validate: %v", err)
	}
	if opts.Resolution != 1 {
		t.Errorf("Resolution = %g, want 1", opts.Resolution)
	}
	if opts.Padding != 4 {
		t.Errorf("Padding = %g, want 4", opts.Padding)
	}
	if opts.PageWidth != 512 || opts.PageHeight != 512 {
		t.Errorf("page size = %gx%g, want 512x512", opts.PageWidth, opts.PageHeight)
	}

	chars := opts.ResolveCharset()
	if len(chars) != 95 {
		t.Fatalf("printable ASCII charset length = %d, want 95", len(chars))
	}
	if chars[0] != ' ' || chars[len(chars)-1] != '~' {
		t.Errorf("charset spans %q..%q, want ' '..'~'", chars[0], chars[len(chars)-1])
	}
}

func TestBuildOptions_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*BuildOptions)
		wantField string
	}{
		{"zero resolution", func(o *BuildOptions) { o.Resolution = 0 }, "Resolution"},
		{"negative padding", func(o *BuildOptions) { o.Padding = -1 }, "Padding"},
		{"zero page width", func(o *BuildOptions) { o.PageWidth = 0 }, "PageWidth"},
		{"zero page height", func(o *BuildOptions) { o.PageHeight = 0 }, "PageHeight"},
		{"no characters", func(o *BuildOptions) { o.Charset = ""; o.Ranges = nil }, "Charset"},
		{"inverted range", func(o *BuildOptions) { o.Ranges = []CharRange{{Lo: 'z', Hi: 'a'}} }, "Ranges"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultBuildOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			var optErr *OptionError
			if !errors.As(err, &optErr) {
				t.Fatalf("expected *OptionError, got %v", err)
			}
			if optErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", optErr.Field, tt.wantField)
			}
		})
	}
}

func TestBuildOptions_ResolveCharset(t *testing.T) {
	opts := BuildOptions{
		Charset: "ba",
		Ranges:  []CharRange{{Lo: 'a', Hi: 'c'}},
	}
	got := opts.ResolveCharset()
	// Literals first in given order, then range expansion, duplicates
	// dropped on first sight.
	want := []rune{'b', 'a', 'c'}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved charset mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOptions_ResolveCharset_Presets(t *testing.T) {
	opts := BuildOptions{Charset: CharsetAlphaNumeric}
	if got := len(opts.ResolveCharset()); got != 63 {
		t.Errorf("alphanumeric preset resolves to %d characters, want 63", got)
	}
}
