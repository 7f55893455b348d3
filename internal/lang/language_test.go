package lang_test

// Notes:
// - Black-box testing: all tests use the public API only (lang_test package)
// - Resolve is the system-locale path and never fails; Parse is the user input path.

import (
	"errors"
	"testing"

	"github.com/alnah/go-apiclient/internal/lang"
)

// ---------------------------------------------------------------------------
// TestNormalize - lowercase with hyphen separator
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase code", input: "en", want: "en"},
		{name: "uppercase code", input: "DE", want: "de"},
		{name: "underscore locale", input: "de_AT", want: "de-at"},
		{name: "hyphen locale", input: "en-US", want: "en-us"},
		{name: "surrounding spaces", input: " de ", want: "de"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := lang.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolve - fallback chain
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want lang.Language
	}{
		{"en-US", lang.English},
		{"en-FI", lang.English},
		{"de", lang.German},
		{"de-AT", lang.German},
		{"de_CH", lang.German},
		{"fr-FR", lang.English},
		{"ko", lang.English},
		{"", lang.English},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			if got := lang.Resolve(tt.tag); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse - user selected language
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    lang.Language
		wantErr bool
	}{
		{name: "english", input: "en", want: lang.English},
		{name: "german", input: "de", want: lang.German},
		{name: "german region", input: "de-DE", want: lang.German},
		{name: "empty is fallback", input: "", want: lang.English},
		{name: "unsupported", input: "fr", wantErr: true},
		{name: "garbage", input: "xx-yy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lang.Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, lang.ErrInvalid) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalid", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLanguage_ZeroValue(t *testing.T) {
	t.Parallel()

	var l lang.Language
	if l.Code() != "en" {
		t.Errorf("zero Language.Code() = %q, want %q", l.Code(), "en")
	}
	if l.DisplayName() != "English" {
		t.Errorf("zero Language.DisplayName() = %q, want %q", l.DisplayName(), "English")
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	all := lang.All()
	if len(all) != 2 {
		t.Fatalf("len(All()) = %d, want 2", len(all))
	}
	if all[1].DisplayName() != "Deutsch" {
		t.Errorf("All()[1].DisplayName() = %q, want %q", all[1].DisplayName(), "Deutsch")
	}
}
