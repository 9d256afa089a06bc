package lemmago

import "errors"

var (
	// ErrUnknownLanguage is returned for a language without a registered
	// dictionary or built-in alphabet.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrLanguageRegistered is returned when a language is registered twice.
	ErrLanguageRegistered = errors.New("language already registered")

	// ErrNoDictionary is returned when registering a nil dictionary.
	ErrNoDictionary = errors.New("no dictionary")
)
