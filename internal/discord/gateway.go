package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// GatewayURL is the Discord gateway endpoint the bot connects to.
const GatewayURL = "wss://gateway.discord.gg/?v=10&encoding=json"

// EventHandler receives dispatch events (READY, MESSAGE_CREATE, ...).
// A non-nil error tears the session down.
type EventHandler func(ctx context.Context, event string, data json.RawMessage) error

type GatewayOptions struct {
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
}

func (o GatewayOptions) withDefaults() GatewayOptions {
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = 10 * time.Second
	}
	if o.ReadTimeout <= 0 {
		// Discord heartbeats roughly every 41s; anything past two
		// intervals means the connection is dead.
		o.ReadTimeout = 90 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	return o
}

// RunGatewayOnce runs a single gateway session: dial, identify on
// Hello, heartbeat until the connection drops or ctx is canceled.
// It always returns a non-nil error; callers decide whether to redial.
func RunGatewayOnce(ctx context.Context, gatewayURL, token string, intents int, handler EventHandler, opts GatewayOptions) error {
	if strings.TrimSpace(gatewayURL) == "" {
		return fmt.Errorf("gatewayURL is required")
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token is required")
	}
	if handler == nil {
		return fmt.Errorf("handler is required")
	}

	opts = opts.withDefaults()

	dialer := websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, gatewayURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(p payload) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout))
		return conn.WriteJSON(p)
	}

	var lastSeq atomic.Int64
	sendHeartbeat := func() error {
		var d json.RawMessage
		if seq := lastSeq.Load(); seq > 0 {
			d, _ = json.Marshal(seq)
		} else {
			d = json.RawMessage("null")
		}
		return send(payload{Op: opHeartbeat, D: d})
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"), time.Now().Add(2*time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	heartbeatStarted := false
	startHeartbeat := func(interval time.Duration) {
		if heartbeatStarted || interval <= 0 {
			return
		}
		heartbeatStarted = true
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					if err := sendHeartbeat(); err != nil {
						return
					}
				}
			}
		}()
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
		var p payload
		if err := conn.ReadJSON(&p); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		if p.S != nil {
			lastSeq.Store(*p.S)
		}

		switch p.Op {
		case opHello:
			var hello helloData
			if err := json.Unmarshal(p.D, &hello); err != nil {
				return fmt.Errorf("bad hello payload: %w", err)
			}
			startHeartbeat(time.Duration(hello.HeartbeatInterval) * time.Millisecond)

			identify := identifyData{
				Token:   token,
				Intents: intents,
				Properties: identifyProperties{
					OS:      "linux",
					Browser: "askbot",
					Device:  "askbot",
				},
			}
			d, err := json.Marshal(identify)
			if err != nil {
				return err
			}
			if err := send(payload{Op: opIdentify, D: d}); err != nil {
				return err
			}
		case opHeartbeat:
			if err := sendHeartbeat(); err != nil {
				return err
			}
		case opHeartbeatAck:
			// Nothing to do.
		case opReconnect:
			return errors.New("gateway requested reconnect")
		case opInvalidSession:
			return errors.New("gateway invalidated session")
		case opDispatch:
			if strings.TrimSpace(p.T) == "" {
				continue
			}
			if err := handler(ctx, p.T, p.D); err != nil {
				return err
			}
		default:
		}
	}
}
