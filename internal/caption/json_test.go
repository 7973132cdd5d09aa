package caption

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeJSONShape(t *testing.T) {
	out, err := SerializeJSON(sampleTrack())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "en", doc["language"])
	assert.Equal(t, "manual", doc["origin"])
	assert.Equal(t, float64(2), doc["caption_count"])

	captions, ok := doc["captions"].([]any)
	require.True(t, ok)
	require.Len(t, captions, 2)

	first, ok := captions[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, first["start"])
	assert.Equal(t, 2.5, first["end"])
	assert.Equal(t, "Hello", first["text"])
}

func TestJSONRoundTrip(t *testing.T) {
	track := Track{
		Language: "hi-IN",
		Origin:   OriginAuto,
		Cues: []Cue{
			{Start: 0, End: 1234 * time.Millisecond, Text: "पहला"},
			{Start: 1234 * time.Millisecond, End: 5 * time.Second, Text: "line one\nline two"},
			{Start: 3*time.Hour + 59*time.Second + 999*time.Millisecond, End: 4 * time.Hour, Text: `with "quotes" & <tags>`},
		},
	}

	out, err := SerializeJSON(track)
	require.NoError(t, err)

	got, err := ParseJSON(out)
	require.NoError(t, err)

	assert.Equal(t, track.Language, got.Language)
	assert.Equal(t, track.Origin, got.Origin)
	require.Len(t, got.Cues, len(track.Cues))

	for i := range track.Cues {
		assert.Equal(t, track.Cues[i].Text, got.Cues[i].Text, "cue %d", i)
		assert.InDelta(t, track.Cues[i].Start.Seconds(), got.Cues[i].Start.Seconds(), 0.001, "cue %d start", i)
		assert.InDelta(t, track.Cues[i].End.Seconds(), got.Cues[i].End.Seconds(), 0.001, "cue %d end", i)
	}
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	_, err := ParseJSON("not json at all")

	var malErr *MalformedPayloadError
	assert.ErrorAs(t, err, &malErr)
}

func TestParseJSONEmptyDocument(t *testing.T) {
	_, err := ParseJSON(`{"language":"en","origin":"manual","caption_count":0,"captions":[]}`)
	assert.ErrorIs(t, err, ErrEmptyTrack)
}
