package caption

import (
	"sort"
	"time"
)

// Origin identifies who produced a caption track.
type Origin string

const (
	// OriginManual marks human-authored or uploaded tracks.
	OriginManual Origin = "manual"
	// OriginAuto marks machine-generated (ASR) tracks.
	OriginAuto Origin = "auto-generated"
)

// Cue is a single timed caption unit.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Track is the full ordered cue list for one language/origin combination.
// It is built once by a parser and never mutated afterwards.
type Track struct {
	Language string
	Origin   Origin
	Cues     []Cue
}

// CatalogEntry describes caption availability for one language.
type CatalogEntry struct {
	Language  string
	HasManual bool
	HasAuto   bool
}

// Catalog lists the caption tracks a video exposes, in the order the
// upstream platform reported them. Order matters: auto-detect resolution
// treats it as a relevance ranking supplied by the fetch layer.
type Catalog []CatalogEntry

// Languages returns the sorted set of language tags in the catalog.
func (c Catalog) Languages() []string {
	langs := make([]string, 0, len(c))
	for _, entry := range c {
		langs = append(langs, entry.Language)
	}
	sort.Strings(langs)
	return langs
}

// Lookup returns the entry for an exact language tag match.
func (c Catalog) Lookup(lang string) (CatalogEntry, bool) {
	for _, entry := range c {
		if entry.Language == lang {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// Selection is the resolver's choice of which track to download.
type Selection struct {
	Language string
	Origin   Origin
}
