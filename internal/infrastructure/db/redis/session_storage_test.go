package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

func TestSessionSlots_Key(t *testing.T) {
	slots := NewSessionStore(nil, 0).For("abc").(*sessionSlots)
	if got := slots.key(ports.SlotToken); got != "session:abc:token" {
		t.Fatalf("unexpected key %q", got)
	}
	if slots.store.ttl != defaultSessionTTL {
		t.Fatalf("expected default ttl, got %v", slots.store.ttl)
	}
}

func TestSessionSlots_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	slots := NewSessionStore(client, time.Minute).For("abc")
	if _, _, err := slots.Get(context.Background(), ports.SlotUser); err == nil {
		t.Fatalf("expected error from unreachable server")
	}
	if err := slots.Delete(context.Background()); err != nil {
		t.Fatalf("deleting no slots must not touch the server: %v", err)
	}
}
