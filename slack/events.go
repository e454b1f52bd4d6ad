package slack

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Socket Mode envelope types.
const (
	envelopeHello      = "hello"
	envelopeDisconnect = "disconnect"
	envelopeEventsAPI  = "events_api"
)

// Event types the bot reacts to.
const (
	EventMessage    = "message"
	EventAppMention = "app_mention"
)

// Envelope is one Socket Mode frame.
type Envelope struct {
	Type       string          `json:"type"`
	EnvelopeID string          `json:"envelope_id"`
	Payload    json.RawMessage `json:"payload"`
}

// Ack acknowledges an envelope.
type Ack struct {
	EnvelopeID string `json:"envelope_id"`
}

// EventPayload is the events_api payload wrapping the actual event.
type EventPayload struct {
	Type  string `json:"type"`
	Event Event  `json:"event"`
}

// Event is an inbound message or mention.
type Event struct {
	Type     string `json:"type"`
	Channel  string `json:"channel"`
	User     string `json:"user"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
	BotID    string `json:"bot_id"`
	Subtype  string `json:"subtype"`
}

// ReplyThreadTS is the thread the reply should land in: the existing thread
// when the event already belongs to one, otherwise the message itself.
func (e Event) ReplyThreadTS() string {
	if e.ThreadTS != "" {
		return e.ThreadTS
	}
	return e.TS
}

var mentionPattern = regexp.MustCompile(`<@[A-Z0-9]+>`)

// StripMentions removes bot/user mention tags from the text.
func StripMentions(text string) string {
	return strings.TrimSpace(mentionPattern.ReplaceAllString(text, ""))
}

var questionStarters = []string{
	"comment", "pourquoi", "ou ", "où ", "quand", "quel", "quelle",
	"qui ", "est-ce", "how", "why", "where", "when", "what", "who",
	"can ", "could", "is ", "are ", "do ", "does ",
	"j'ai besoin", "je cherche", "je voudrais", "je veux",
	"help", "aide", "besoin", "probleme", "problème", "souci",
	"urgent", "stp", "svp", "please",
}

// IsQuestion is the heuristic deciding whether a channel message is worth
// answering: it contains a question mark or starts with an interrogative or
// help word (French or English).
func IsQuestion(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, starter := range questionStarters {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}
	return false
}

// RenderThreadContext renders prior thread messages as "sender: text" lines,
// oldest first. The last message is excluded: it is the question being
// answered.
func RenderThreadContext(messages []ThreadMessage) string {
	if len(messages) <= 1 {
		return ""
	}
	lines := make([]string, 0, len(messages)-1)
	for _, msg := range messages[:len(messages)-1] {
		user := msg.User
		if user == "" {
			user = "unknown"
		}
		lines = append(lines, fmt.Sprintf("<@%s>: %s", user, msg.Text))
	}
	return strings.Join(lines, "\n")
}
