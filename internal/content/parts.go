package content

import "encoding/json"

// PartKind enumerates the recognized shapes of one entry in a "parts" list.
type PartKind int

const (
	// PartUnrecognized marks dict shapes we do not understand; they are
	// dropped from output rather than stringified.
	PartUnrecognized PartKind = iota
	PartText
	PartImage
	PartAudio
	// PartVerbatim is a non-string, non-dict value rendered as its raw
	// JSON form.
	PartVerbatim
)

// Part is one classified entry of a parts list.
type Part struct {
	Kind    PartKind
	Text    string  // PartText, PartVerbatim
	Pointer string  // PartImage, PartAudio asset pointer
	Start   float64 // PartAudio
	End     float64 // PartAudio
}

type rawPart struct {
	ContentType  string  `json:"content_type"`
	AssetPointer string  `json:"asset_pointer"`
	Text         *string `json:"text"`
	Metadata     *struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"metadata"`
	AudioAssetPointer *struct {
		AssetPointer string `json:"asset_pointer"`
		Metadata     *struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
		} `json:"metadata"`
	} `json:"audio_asset_pointer"`
}

func classifyParts(raws []json.RawMessage) []Part {
	parts := make([]Part, 0, len(raws))
	for _, raw := range raws {
		parts = append(parts, classifyPart(raw))
	}
	return parts
}

func classifyPart(raw json.RawMessage) Part {
	// plain string part
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Part{Kind: PartText, Text: s}
	}

	var rp rawPart
	if err := json.Unmarshal(raw, &rp); err != nil {
		// not a dict either: append the raw JSON form verbatim
		return Part{Kind: PartVerbatim, Text: string(raw)}
	}

	switch rp.ContentType {
	case "image_asset_pointer":
		return Part{Kind: PartImage, Pointer: rp.AssetPointer}

	case "audio_asset_pointer":
		p := Part{Kind: PartAudio, Pointer: rp.AssetPointer}
		if rp.Metadata != nil {
			p.Start, p.End = rp.Metadata.Start, rp.Metadata.End
		}
		return p

	case "real_time_user_audio_video_asset_pointer":
		p := Part{Kind: PartAudio}
		if rp.AudioAssetPointer != nil {
			p.Pointer = rp.AudioAssetPointer.AssetPointer
			if rp.AudioAssetPointer.Metadata != nil {
				p.Start = rp.AudioAssetPointer.Metadata.Start
				p.End = rp.AudioAssetPointer.Metadata.End
			}
		}
		return p
	}

	if rp.Text != nil {
		return Part{Kind: PartText, Text: *rp.Text}
	}

	return Part{Kind: PartUnrecognized}
}

// Duration returns the audio duration in seconds, zero when absent.
func (p Part) Duration() float64 {
	d := p.End - p.Start
	if d < 0 {
		return 0
	}
	return d
}
