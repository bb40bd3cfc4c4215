// Package discord implements the minimal Discord surface the bot
// needs: a gateway session for inbound events and REST message sends.
package discord

import "encoding/json"

// Gateway opcodes (the subset this bot speaks).
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatAck   = 11
)

// Gateway intents.
const (
	IntentGuilds         = 1 << 0
	IntentGuildMessages  = 1 << 9
	IntentMessageContent = 1 << 15

	// DefaultIntents covers reading guild messages with content.
	DefaultIntents = IntentGuilds | IntentGuildMessages | IntentMessageContent
)

// Dispatch event names surfaced to the handler.
const (
	EventReady         = "READY"
	EventMessageCreate = "MESSAGE_CREATE"
)

type payload struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  *int64          `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

type helloData struct {
	HeartbeatInterval int `json:"heartbeat_interval"`
}

type identifyData struct {
	Token      string             `json:"token"`
	Intents    int                `json:"intents"`
	Properties identifyProperties `json:"properties"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// User is a Discord user as carried on READY and message payloads.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// Ready is the READY dispatch payload.
type Ready struct {
	User User `json:"user"`
}

// Message is an inbound channel message from MESSAGE_CREATE.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
	Author    User   `json:"author"`
}

// ParseReady decodes a READY dispatch payload.
func ParseReady(data json.RawMessage) (Ready, error) {
	var r Ready
	err := json.Unmarshal(data, &r)
	return r, err
}

// ParseMessage decodes a MESSAGE_CREATE dispatch payload.
func ParseMessage(data json.RawMessage) (Message, error) {
	var m Message
	err := json.Unmarshal(data, &m)
	return m, err
}
