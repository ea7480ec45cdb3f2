package relay

// Role identifies the author of a chat message. The Ollama chat API
// accepts exactly these three values.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry in a conversation payload
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Turn pairs a user message with the assistant reply it received.
// A session's history is an ordered, append-only sequence of turns
// owned by the caller.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// chatRequest is the wire shape of an Ollama /api/chat call
type chatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  chatOptions `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}
