package export

import (
	"bytes"
	"encoding/json"
	"time"
)

// Conversation is one exported chat thread. The mapping holds the message
// graph; only the messages and their create_time matter for output, the
// tree edges do not.
type Conversation struct {
	Title      string   `json:"title"`
	CreateTime *float64 `json:"create_time"`
	UpdateTime *float64 `json:"update_time"`
	IsStarred  bool     `json:"is_starred"`
	IsArchived bool     `json:"is_archived"`
	Mapping    Mapping  `json:"mapping"`
}

// Node wraps an optional message. Nodes without a message are structural
// and discarded.
type Node struct {
	Message *Message `json:"message"`
}

type Message struct {
	Author     Author          `json:"author"`
	Content    json.RawMessage `json:"content"`
	CreateTime *float64        `json:"create_time"`
	Metadata   *Metadata       `json:"metadata"`
	Recipient  string          `json:"recipient"`
}

type Author struct {
	Role string `json:"role"` // user/assistant/system/tool
	Name string `json:"name"`
}

type Metadata struct {
	IsVisuallyHidden bool `json:"is_visually_hidden_from_conversation"`
}

// Hidden reports whether the message is marked visually hidden.
func (m *Message) Hidden() bool {
	return m.Metadata != nil && m.Metadata.IsVisuallyHidden
}

// Mapping is the node-id → node dictionary of a conversation. Document
// order of the keys is preserved so that messages with equal or missing
// timestamps keep a deterministic relative order.
type Mapping struct {
	order []string
	nodes map[string]Node
}

func (m *Mapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		// tolerate null or wrong shape: empty mapping
		m.order = nil
		m.nodes = nil
		return nil
	}

	m.nodes = make(map[string]Node)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var node Node
		if err := dec.Decode(&node); err != nil {
			return err
		}
		if _, seen := m.nodes[key]; !seen {
			m.order = append(m.order, key)
		}
		m.nodes[key] = node
	}
	return nil
}

func (m Mapping) MarshalJSON() ([]byte, error) {
	out := make(map[string]Node, len(m.nodes))
	for k, v := range m.nodes {
		out[k] = v
	}
	return json.Marshal(out)
}

// Len reports the number of nodes.
func (m Mapping) Len() int { return len(m.order) }

// Messages collects every message in document order, discarding structural
// nodes and visually hidden messages.
func (m Mapping) Messages() []*Message {
	var msgs []*Message
	for _, id := range m.order {
		node := m.nodes[id]
		if node.Message == nil || node.Message.Hidden() {
			continue
		}
		msgs = append(msgs, node.Message)
	}
	return msgs
}

// CreatedAt converts the epoch-seconds creation time, if any.
func (c *Conversation) CreatedAt() (time.Time, bool) {
	return epochTime(c.CreateTime)
}

// UpdatedAt converts the epoch-seconds update time, if any.
func (c *Conversation) UpdatedAt() (time.Time, bool) {
	return epochTime(c.UpdateTime)
}

// EpochTime converts optional epoch seconds to a local time.
func EpochTime(secs *float64) (time.Time, bool) {
	return epochTime(secs)
}

func epochTime(secs *float64) (time.Time, bool) {
	if secs == nil || *secs == 0 {
		return time.Time{}, false
	}
	s := int64(*secs)
	ns := int64((*secs - float64(s)) * 1e9)
	return time.Unix(s, ns), true
}
