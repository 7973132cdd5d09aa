package caption

import (
	"strings"

	"golang.org/x/text/language"
)

// autoAliases are the requested-language values that mean "pick for me".
// The empty string is included because the web form submits it when the
// user never touches the language field.
var autoAliases = map[string]bool{
	"":            true,
	"auto":        true,
	"auto-detect": true,
}

// Resolve picks exactly one caption track from the catalog, or fails with
// a structured error. The policy is deterministic and pure:
//
//   - "auto" takes the first catalog entry with a manual track, then the
//     first with an auto-generated one. Catalog order is the upstream
//     relevance ranking and is not second-guessed here.
//   - A specific tag matches exactly first, then by BCP-47 base language
//     (a request for "en" matches an "en-US" track). Manual tracks always
//     win over auto-generated ones for the matched language, and resolution
//     never substitutes a different language than the one requested.
func Resolve(catalog Catalog, requested string) (Selection, error) {
	if len(catalog) == 0 {
		return Selection{}, ErrNoCaptions
	}

	if autoAliases[strings.ToLower(strings.TrimSpace(requested))] {
		return resolveAuto(catalog)
	}
	return resolveExplicit(catalog, strings.TrimSpace(requested))
}

func resolveAuto(catalog Catalog) (Selection, error) {
	for _, entry := range catalog {
		if entry.HasManual {
			return Selection{Language: entry.Language, Origin: OriginManual}, nil
		}
	}
	for _, entry := range catalog {
		if entry.HasAuto {
			return Selection{Language: entry.Language, Origin: OriginAuto}, nil
		}
	}
	// Unreachable for any catalog built by the fetch layer, which only
	// lists languages that have at least one track.
	return Selection{}, ErrNoCaptions
}

func resolveExplicit(catalog Catalog, requested string) (Selection, error) {
	entry, ok := catalog.Lookup(requested)
	if !ok {
		entry, ok = lookupByBase(catalog, requested)
	}
	if !ok {
		return Selection{}, &LanguageNotAvailableError{
			Requested: requested,
			Available: catalog.Languages(),
		}
	}

	if entry.HasManual {
		return Selection{Language: entry.Language, Origin: OriginManual}, nil
	}
	if entry.HasAuto {
		return Selection{Language: entry.Language, Origin: OriginAuto}, nil
	}
	return Selection{}, &LanguageNotAvailableError{
		Requested: requested,
		Available: catalog.Languages(),
	}
}

// lookupByBase matches by base language code. YouTube reports IETF tags
// like "en-US" or "zh-Hans" while users type bare codes like "en", so an
// exact miss falls back to the first entry sharing the base subtag.
func lookupByBase(catalog Catalog, requested string) (CatalogEntry, bool) {
	want := baseLanguage(requested)
	if want == "" {
		return CatalogEntry{}, false
	}
	for _, entry := range catalog {
		if baseLanguage(entry.Language) == want {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

func baseLanguage(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		// Not a well-formed tag; fall back to the text before the first
		// subtag separator so odd upstream codes still compare.
		base, _, _ := strings.Cut(strings.ToLower(tag), "-")
		return base
	}
	base, _ := parsed.Base()
	return base.String()
}
