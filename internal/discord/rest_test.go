package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRest(t *testing.T, handler http.HandlerFunc) *Rest {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r := NewRest("test-token")
	r.http = srv.Client()
	r.baseURL = srv.URL
	return r
}

func TestCreateMessage_SendsAuthAndReply(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody createMessageRequest
	r := newTestRest(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotAuth = req.Header.Get("Authorization")
		raw, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := r.CreateMessage(context.Background(), "chan1", "hello", "msg9"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if gotPath != "/channels/chan1/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bot test-token" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotBody.Content != "hello" {
		t.Errorf("content = %q", gotBody.Content)
	}
	if gotBody.MessageReference == nil || gotBody.MessageReference.MessageID != "msg9" {
		t.Errorf("message_reference = %+v", gotBody.MessageReference)
	}
}

func TestCreateMessage_ClampsContent(t *testing.T) {
	var gotBody createMessageRequest
	r := newTestRest(t, func(w http.ResponseWriter, req *http.Request) {
		raw, _ := io.ReadAll(req.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	})

	if err := r.CreateMessage(context.Background(), "c", strings.Repeat("x", 2500), ""); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if n := len([]rune(gotBody.Content)); n != maxMessageLen {
		t.Errorf("content length = %d, want %d", n, maxMessageLen)
	}
	if gotBody.MessageReference != nil {
		t.Errorf("unexpected message_reference: %+v", gotBody.MessageReference)
	}
}

func TestCreateMessage_NonOKIsError(t *testing.T) {
	r := newTestRest(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, `{"message":"Missing Permissions"}`, http.StatusForbidden)
	})

	err := r.CreateMessage(context.Background(), "c", "hi", "")
	if err == nil {
		t.Fatalf("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestParseMessage(t *testing.T) {
	raw := json.RawMessage(`{"id":"m1","channel_id":"c1","content":"!ask hi","author":{"id":"u1","username":"alice","bot":false}}`)
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.ID != "m1" || msg.ChannelID != "c1" || msg.Content != "!ask hi" {
		t.Errorf("unexpected message: %+v", msg)
	}
	if msg.Author.ID != "u1" || msg.Author.Bot {
		t.Errorf("unexpected author: %+v", msg.Author)
	}
}

func TestParseReady(t *testing.T) {
	raw := json.RawMessage(`{"v":10,"user":{"id":"bot1","username":"askbot","bot":true}}`)
	ready, err := ParseReady(raw)
	if err != nil {
		t.Fatalf("ParseReady: %v", err)
	}
	if ready.User.ID != "bot1" || !ready.User.Bot {
		t.Errorf("unexpected ready payload: %+v", ready)
	}
}
