package caption

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyCatalog(t *testing.T) {
	_, err := Resolve(Catalog{}, "auto")
	assert.ErrorIs(t, err, ErrNoCaptions)

	_, err = Resolve(nil, "en")
	assert.ErrorIs(t, err, ErrNoCaptions)
}

func TestResolveAutoPrefersManual(t *testing.T) {
	catalog := Catalog{
		{Language: "de", HasAuto: true},
		{Language: "en", HasManual: true, HasAuto: true},
		{Language: "fr", HasManual: true},
	}

	sel, err := Resolve(catalog, "auto")
	require.NoError(t, err)
	assert.Equal(t, Selection{Language: "en", Origin: OriginManual}, sel)
}

func TestResolveAutoFallsBackToAuto(t *testing.T) {
	catalog := Catalog{
		{Language: "hi", HasAuto: true},
		{Language: "en", HasAuto: true},
	}

	sel, err := Resolve(catalog, "auto")
	require.NoError(t, err)
	assert.Equal(t, Selection{Language: "hi", Origin: OriginAuto}, sel)
}

func TestResolveAutoAliases(t *testing.T) {
	catalog := Catalog{{Language: "en", HasManual: true}}

	for _, alias := range []string{"auto", "AUTO", "auto-detect", "", "  "} {
		sel, err := Resolve(catalog, alias)
		require.NoError(t, err, "alias %q", alias)
		assert.Equal(t, "en", sel.Language)
	}
}

func TestResolveExplicitPrefersManual(t *testing.T) {
	catalog := Catalog{
		{Language: "en", HasManual: true, HasAuto: true},
	}

	sel, err := Resolve(catalog, "en")
	require.NoError(t, err)
	assert.Equal(t, Selection{Language: "en", Origin: OriginManual}, sel)
}

func TestResolveExplicitAutoOnly(t *testing.T) {
	catalog := Catalog{
		{Language: "en", HasManual: true},
		{Language: "hi", HasAuto: true},
	}

	sel, err := Resolve(catalog, "hi")
	require.NoError(t, err)
	assert.Equal(t, Selection{Language: "hi", Origin: OriginAuto}, sel)
}

func TestResolveExplicitNeverSubstitutesLanguage(t *testing.T) {
	catalog := Catalog{
		{Language: "en", HasManual: true},
		{Language: "fr", HasAuto: true},
	}

	_, err := Resolve(catalog, "ja")
	var langErr *LanguageNotAvailableError
	require.ErrorAs(t, err, &langErr)
	assert.Equal(t, "ja", langErr.Requested)
	assert.Equal(t, []string{"en", "fr"}, langErr.Available)
}

func TestResolveBaseCodeMatching(t *testing.T) {
	// YouTube reports IETF tags; users type bare codes.
	catalog := Catalog{
		{Language: "en-US", HasManual: true},
		{Language: "hi-IN", HasAuto: true},
		{Language: "zh-Hans", HasAuto: true},
	}

	tests := []struct {
		requested string
		want      Selection
	}{
		{"en", Selection{Language: "en-US", Origin: OriginManual}},
		{"hi", Selection{Language: "hi-IN", Origin: OriginAuto}},
		{"zh", Selection{Language: "zh-Hans", Origin: OriginAuto}},
		{"en-US", Selection{Language: "en-US", Origin: OriginManual}},
	}

	for _, tt := range tests {
		sel, err := Resolve(catalog, tt.requested)
		require.NoError(t, err, "requested %q", tt.requested)
		assert.Equal(t, tt.want, sel, "requested %q", tt.requested)
	}
}

func TestResolveSelectionAlwaysInCatalog(t *testing.T) {
	catalogs := []Catalog{
		{{Language: "en", HasManual: true}},
		{{Language: "ko", HasAuto: true}},
		{{Language: "es", HasAuto: true}, {Language: "pt", HasManual: true}},
		{{Language: "a", HasAuto: true}, {Language: "b", HasAuto: true}, {Language: "c", HasManual: true}},
	}

	for _, catalog := range catalogs {
		sel, err := Resolve(catalog, "auto")
		require.NoError(t, err)

		entry, ok := catalog.Lookup(sel.Language)
		require.True(t, ok, "selected language %q not in catalog", sel.Language)
		if sel.Origin == OriginManual {
			assert.True(t, entry.HasManual)
		} else {
			assert.True(t, entry.HasAuto)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
	}{
		{ErrInvalidURL, KindInvalidURL},
		{ErrVideoUnavailable, KindVideoUnavailable},
		{ErrNoCaptions, KindNoCaptions},
		{ErrEmptyTrack, KindEmptyTrack},
		{&LanguageNotAvailableError{Requested: "ja"}, KindLanguageNotAvailable},
		{&MalformedPayloadError{Reason: "nope"}, KindMalformedPayload},
	}

	for _, tt := range tests {
		kind, ok := KindOf(tt.err)
		assert.True(t, ok)
		assert.Equal(t, tt.kind, kind)
	}

	_, ok := KindOf(errors.New("unrelated"))
	assert.False(t, ok)
}
