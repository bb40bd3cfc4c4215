package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultRestBaseURL = "https://discord.com/api/v10"

// maxMessageLen is Discord's hard content limit; the REST layer clamps
// as a final guard regardless of what the dispatcher already did.
const maxMessageLen = 2000

// Rest is a minimal Discord REST client for sending messages.
type Rest struct {
	token string
	http  *http.Client

	// baseURL is overridable in tests.
	baseURL string
}

func NewRest(token string) *Rest {
	return &Rest{
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultRestBaseURL,
	}
}

type messageReference struct {
	MessageID string `json:"message_id"`
}

type createMessageRequest struct {
	Content          string            `json:"content"`
	MessageReference *messageReference `json:"message_reference,omitempty"`
}

// CreateMessage posts content into channelID. When replyToID is
// non-empty the message is sent as a reply to that message.
func (r *Rest) CreateMessage(ctx context.Context, channelID, content, replyToID string) error {
	if runes := []rune(content); len(runes) > maxMessageLen {
		content = string(runes[:maxMessageLen])
	}

	body := createMessageRequest{Content: content}
	if strings.TrimSpace(replyToID) != "" {
		body.MessageReference = &messageReference{MessageID: replyToID}
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/channels/"+channelID+"/messages", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("create message failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// TriggerTyping fires the typing indicator for channelID. Best-effort;
// failures are ignored.
func (r *Rest) TriggerTyping(ctx context.Context, channelID string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/channels/"+channelID+"/typing", nil)
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bot "+r.token)

	resp, err := r.http.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
