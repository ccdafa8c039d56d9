package nats

import (
	"testing"

	"github.com/market-scout/marketscout/internal/domain/event"
)

func TestEventPublisher_Subject(t *testing.T) {
	p := &eventPublisher{subjectPrefix: "marketscout"}

	tests := []struct {
		name string
		evt  event.Event
		want string
	}{
		{"market event", event.NewMarketCreated("m1", "Pike Place"), "marketscout.market"},
		{"token event", event.NewTokenReuseDetected("u1", "f1"), "marketscout.token"},
		{"user event", event.NewUserRegistered("u1", "alice"), "marketscout.user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.subject(tt.evt); got != tt.want {
				t.Errorf("subject = %q, want %q", got, tt.want)
			}
		})
	}
}
