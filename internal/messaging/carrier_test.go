package messaging

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestMessageCarrier(t *testing.T) {
	msg := &kafka.Message{}
	carrier := newMessageCarrier(msg)

	carrier.Set("traceparent", "00-abc-def-01")
	if got := carrier.Get("traceparent"); got != "00-abc-def-01" {
		t.Errorf("expected traceparent value, got %q", got)
	}

	carrier.Set("traceparent", "00-abc-def-02")
	if got := carrier.Get("traceparent"); got != "00-abc-def-02" {
		t.Errorf("expected overwritten value, got %q", got)
	}
	if len(msg.Headers) != 1 {
		t.Errorf("expected 1 header after overwrite, got %d", len(msg.Headers))
	}

	carrier.Set("baggage", "k=v")
	keys := carrier.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if carrier.Get("missing") != "" {
		t.Error("expected empty value for missing key")
	}
}
