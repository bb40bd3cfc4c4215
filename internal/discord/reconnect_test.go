package discord

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestRunGatewayWithReconnect_RedialsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	disconnects := 0
	handler := func(ctx context.Context, event string, data json.RawMessage) error { return nil }

	err := RunGatewayWithReconnect(ctx, "ws://127.0.0.1:1/", "tok", 0, handler,
		GatewayOptions{HandshakeTimeout: 200 * time.Millisecond},
		ReconnectOptions{
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
			OnDisconnect: func(err error, next time.Duration) {
				if err == nil {
					t.Errorf("disconnect callback with nil error")
				}
				disconnects++
				if disconnects >= 3 {
					cancel()
				}
			},
		})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if disconnects < 3 {
		t.Fatalf("disconnects = %d, want at least 3", disconnects)
	}
}
