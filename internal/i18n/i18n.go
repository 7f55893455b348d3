// Package i18n holds the user-facing strings of the client, in every
// supported content language.
package i18n

import (
	"github.com/alnah/go-apiclient/internal/lang"
	"github.com/alnah/go-apiclient/internal/problem"
)

// Key identifies a translated string, e.g. "errorScreen.title".
type Key string

// Common keys.
const (
	CommonInternetConnectionError = Key("common.internetConnectionError")
	EmptyStateContent             = Key("emptyStateComponent.content")
	ErrorScreenTitle              = Key("errorScreen.title")
)

// ProblemKey returns the key of the message shown for a problem kind.
func ProblemKey(kind problem.Kind) Key {
	return Key("problem." + kind.String())
}

// Text returns the translation of key in l. Missing translations fall
// back to English, then to the key itself.
func Text(l lang.Language, key Key) string {
	return lookup(translations, l, key)
}

func lookup(tables map[string]map[Key]string, l lang.Language, key Key) string {
	if s, ok := tables[l.Code()][key]; ok {
		return s
	}
	if s, ok := tables[lang.English.Code()][key]; ok {
		return s
	}
	return string(key)
}

// Message returns the user-facing message for a problem kind.
func Message(l lang.Language, kind problem.Kind) string {
	return Text(l, ProblemKey(kind))
}

// translations maps language code to key to text.
// Strings are versioned with the binary; update requires rebuild.
var translations = map[string]map[Key]string{
	"en": en,
	"de": de,
}

var en = map[Key]string{
	CommonInternetConnectionError: "Internet connection problems",
	EmptyStateContent:             "Unfortunately no content was found.",
	ErrorScreenTitle:              "Error",

	"problem.cannot-connect": "Cannot reach the server. Check your internet connection.",
	"problem.timeout":        "The server took too long to respond. Please try again.",
	"problem.unauthorized":   "Your session has expired. Please log in again.",
	"problem.forbidden":      "You are not allowed to do this.",
	"problem.not-found":      "The requested content was not found.",
	"problem.server":         "The server ran into an error. Please try again later.",
	"problem.rejected":       "The server rejected the request.",
	"problem.unknown":        "An unexpected error occurred.",
}

var de = map[Key]string{
	CommonInternetConnectionError: "Internet Verbindungsprobleme",
	EmptyStateContent:             "Leider wurden keine Inhalte gefunden.",
	ErrorScreenTitle:              "Fehler",

	"problem.cannot-connect": "Der Server ist nicht erreichbar. Bitte prüfen Sie Ihre Internetverbindung.",
	"problem.timeout":        "Der Server hat zu lange gebraucht. Bitte erneut versuchen.",
	"problem.unauthorized":   "Ihre Sitzung ist abgelaufen. Bitte melden Sie sich erneut an.",
	"problem.forbidden":      "Dafür fehlt Ihnen die Berechtigung.",
	"problem.not-found":      "Der angeforderte Inhalt wurde nicht gefunden.",
	"problem.server":         "Auf dem Server ist ein Fehler aufgetreten. Bitte später erneut versuchen.",
	"problem.rejected":       "Der Server hat die Anfrage abgelehnt.",
	"problem.unknown":        "Ein unerwarteter Fehler ist aufgetreten.",
}
