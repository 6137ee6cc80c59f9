package content

import "encoding/json"

// Kind enumerates the recognized content-block shapes. Classification
// inspects the raw structure once; the extractor then switches on Kind
// instead of re-probing keys.
type Kind int

const (
	KindUnknown Kind = iota
	KindParts
	KindReasoningRecap
	KindThoughts
	KindUserContext
	KindCode
	KindText
	KindResult
)

// Thought is one entry of a "thoughts" block.
type Thought struct {
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// Block is a classified content block. Only the fields for its Kind are
// populated; Text carries the payload for the text-like kinds and the
// best-effort fallback for KindUnknown.
type Block struct {
	Kind Kind

	Parts    []Part
	Text     string
	Language string // KindCode
	Thoughts []Thought

	// KindUserContext
	Profile      string
	Instructions string
}

// rawContent is a superset of every content-block shape. Pointer fields
// distinguish an absent key from an empty value, which drives dispatch.
type rawContent struct {
	ContentType      string             `json:"content_type"`
	Parts            *[]json.RawMessage `json:"parts"`
	Text             *string            `json:"text"`
	Result           *string            `json:"result"`
	Thoughts         *[]Thought         `json:"thoughts"`
	UserProfile      string             `json:"user_profile"`
	UserInstructions string             `json:"user_instructions"`
	Language         string             `json:"language"`
	Content          string             `json:"content"`
}

// Classify maps a raw content block onto its Block variant. Dispatch
// order matters: a parts key wins over everything else, and the explicit
// content_type checks come before the bare text/result probes. Malformed
// input degrades to KindUnknown with an empty payload, never an error.
func Classify(raw json.RawMessage) Block {
	var rc rawContent
	if err := json.Unmarshal(raw, &rc); err != nil {
		return Block{Kind: KindUnknown}
	}

	switch {
	case rc.Parts != nil:
		return Block{Kind: KindParts, Parts: classifyParts(*rc.Parts)}

	case rc.ContentType == "reasoning_recap":
		return Block{Kind: KindReasoningRecap, Text: rc.Content}

	case rc.Thoughts != nil:
		return Block{Kind: KindThoughts, Thoughts: *rc.Thoughts}

	case rc.ContentType == "user_editable_context":
		return Block{
			Kind:         KindUserContext,
			Profile:      rc.UserProfile,
			Instructions: rc.UserInstructions,
		}

	case rc.ContentType == "code":
		var code string
		if rc.Text != nil {
			code = *rc.Text
		}
		return Block{Kind: KindCode, Text: code, Language: rc.Language}

	case rc.Text != nil:
		return Block{Kind: KindText, Text: *rc.Text}

	case rc.Result != nil:
		return Block{Kind: KindResult, Text: *rc.Result}

	default:
		// best effort: some blocks carry their payload in a nested
		// "content" string
		return Block{Kind: KindUnknown, Text: rc.Content}
	}
}
