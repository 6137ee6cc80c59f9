package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDispatchOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Kind
	}{
		{"parts wins over text", `{"parts":["a"],"text":"ignored"}`, KindParts},
		{"parts wins over content_type", `{"content_type":"code","parts":["a"]}`, KindParts},
		{"empty parts still parts", `{"parts":[]}`, KindParts},
		{"reasoning recap", `{"content_type":"reasoning_recap","content":"done"}`, KindReasoningRecap},
		{"thoughts", `{"thoughts":[{"summary":"s","content":"c"}]}`, KindThoughts},
		{"user context", `{"content_type":"user_editable_context","user_profile":"p"}`, KindUserContext},
		{"code", `{"content_type":"code","text":"print(1)","language":"python"}`, KindCode},
		{"text", `{"text":"T"}`, KindText},
		{"result", `{"result":"R"}`, KindResult},
		{"unknown", `{"weird":true}`, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := Classify(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, block.Kind)
		})
	}
}

func TestClassifyPayloads(t *testing.T) {
	block := Classify(json.RawMessage(`{"text":"T"}`))
	assert.Equal(t, "T", block.Text)

	block = Classify(json.RawMessage(`{"result":"R"}`))
	assert.Equal(t, "R", block.Text)

	block = Classify(json.RawMessage(`{"content_type":"code","text":"x = 1","language":"python"}`))
	assert.Equal(t, "x = 1", block.Text)
	assert.Equal(t, "python", block.Language)

	block = Classify(json.RawMessage(`{"content_type":"user_editable_context","user_profile":"p","user_instructions":"i"}`))
	assert.Equal(t, "p", block.Profile)
	assert.Equal(t, "i", block.Instructions)

	block = Classify(json.RawMessage(`{"thoughts":[{"summary":"a","content":"b"},{"summary":"c","content":"d"}]}`))
	require.Len(t, block.Thoughts, 2)
	assert.Equal(t, "a", block.Thoughts[0].Summary)
}

func TestClassifyFallbackContent(t *testing.T) {
	block := Classify(json.RawMessage(`{"content_type":"mystery","content":"nested"}`))
	assert.Equal(t, KindUnknown, block.Kind)
	assert.Equal(t, "nested", block.Text)
}

func TestClassifyMalformedNeverPanics(t *testing.T) {
	for _, raw := range []string{`"just a string"`, `[1,2,3]`, `null`, `42`, `{broken`} {
		block := Classify(json.RawMessage(raw))
		assert.Equal(t, KindUnknown, block.Kind, "input %q", raw)
		assert.Empty(t, block.Text)
	}
}

func TestClassifyParts(t *testing.T) {
	block := Classify(json.RawMessage(`{"parts":[
		"hello",
		{"content_type":"image_asset_pointer","asset_pointer":"file-service://file-AAA"},
		{"content_type":"audio_asset_pointer","asset_pointer":"sediment://file_BBB","metadata":{"start":1.0,"end":3.5}},
		{"content_type":"real_time_user_audio_video_asset_pointer","audio_asset_pointer":{"asset_pointer":"sediment://file_CCC","metadata":{"start":0,"end":2}}},
		{"text":"dict text"},
		{"content_type":"something_else","payload":1},
		17
	]}`))
	require.Equal(t, KindParts, block.Kind)
	require.Len(t, block.Parts, 7)

	assert.Equal(t, PartText, block.Parts[0].Kind)
	assert.Equal(t, "hello", block.Parts[0].Text)

	assert.Equal(t, PartImage, block.Parts[1].Kind)
	assert.Equal(t, "file-service://file-AAA", block.Parts[1].Pointer)

	assert.Equal(t, PartAudio, block.Parts[2].Kind)
	assert.InDelta(t, 2.5, block.Parts[2].Duration(), 1e-9)

	assert.Equal(t, PartAudio, block.Parts[3].Kind)
	assert.Equal(t, "sediment://file_CCC", block.Parts[3].Pointer)
	assert.InDelta(t, 2.0, block.Parts[3].Duration(), 1e-9)

	assert.Equal(t, PartText, block.Parts[4].Kind)
	assert.Equal(t, "dict text", block.Parts[4].Text)

	assert.Equal(t, PartUnrecognized, block.Parts[5].Kind)

	assert.Equal(t, PartVerbatim, block.Parts[6].Kind)
	assert.Equal(t, "17", block.Parts[6].Text)
}

func TestPartDurationNeverNegative(t *testing.T) {
	p := Part{Kind: PartAudio, Start: 5, End: 2}
	assert.Zero(t, p.Duration())
}
