package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestProfileCache_KeyAndDefaultTTL(t *testing.T) {
	c := NewProfileCache(nil, 0)
	if c.ttl != defaultProfileTTL {
		t.Fatalf("expected default ttl, got %v", c.ttl)
	}
	if got := c.key("0123456789abcdef"); got != "card:public:0123456789abcdef" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestProfileCache_UnreachableServerIsAnErrorNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewProfileCache(client, time.Minute)
	_, ok, err := c.Get(context.Background(), "abc")
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if ok {
		t.Fatalf("error must not be reported as a hit")
	}
}
