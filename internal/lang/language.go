// Package lang handles the content language of user-facing text.
package lang

import (
	"fmt"
	"strings"
)

// Language is a supported content language.
// The zero value is English.
type Language struct {
	code string
}

// Supported content languages.
var (
	English = Language{code: "en"}
	German  = Language{code: "de"}
)

// Fallback is used when a system locale has no matching content.
var Fallback = English

// supported maps normalized tags to content languages. Regional tags
// listed here resolve exactly; others fall back to their base code.
var supported = map[string]Language{
	"en":    English,
	"en-us": English,
	"de":    German,
}

// displayNames holds the native name of each language.
var displayNames = map[string]string{
	"en": "English",
	"de": "Deutsch",
}

// Normalize normalizes a language tag to lowercase with hyphen separator.
// Accepts: "de-AT", "de_AT", "DE-AT" -> "de-at"
func Normalize(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}

// BaseCode extracts the base language code from a tag.
// Examples: "de-AT" -> "de", "en" -> "en"
func BaseCode(tag string) string {
	normalized := Normalize(tag)
	if idx := strings.Index(normalized, "-"); idx != -1 {
		return normalized[:idx]
	}
	return normalized
}

// Parse validates a language tag selected by the user.
// An empty tag yields the fallback language. Regional tags are accepted
// when their base code is supported.
func Parse(tag string) (Language, error) {
	if strings.TrimSpace(tag) == "" {
		return Fallback, nil
	}
	if l, ok := lookup(tag); ok {
		return l, nil
	}
	return Language{}, fmt.Errorf("invalid language %q (supported: en, de): %w", tag, ErrInvalid)
}

// Resolve picks the content language for a system locale tag:
// exact tag, then base code, then Fallback. It never fails.
func Resolve(tag string) Language {
	if l, ok := lookup(tag); ok {
		return l
	}
	return Fallback
}

func lookup(tag string) (Language, bool) {
	normalized := Normalize(tag)
	if l, ok := supported[normalized]; ok {
		return l, true
	}
	l, ok := supported[BaseCode(normalized)]
	return l, ok
}

// Code returns the ISO 639-1 code, e.g. "de".
func (l Language) Code() string {
	if l.code == "" {
		return English.code
	}
	return l.code
}

// String returns the language code.
func (l Language) String() string {
	return l.Code()
}

// DisplayName returns the native name of the language.
func (l Language) DisplayName() string {
	return displayNames[l.Code()]
}

// All returns the supported content languages.
func All() []Language {
	return []Language{English, German}
}
