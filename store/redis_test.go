package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewRedisStore(ctx, RedisOptions{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatalf("NewRedisStore() expected connection error")
	}
}

func TestRedisStore_EmptyBatch(t *testing.T) {
	// 空批量操作不访问网络
	rs := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	defer rs.Close()

	got, err := rs.BatchGet(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("BatchGet(nil) = %v, %v", got, err)
	}
	if err := rs.BatchSet(context.Background(), nil); err != nil {
		t.Errorf("BatchSet(nil) error = %v", err)
	}
	if rs.Name() != "redis" {
		t.Errorf("Name() = %q", rs.Name())
	}
}

func TestExpiration(t *testing.T) {
	if expiration(nil) != 0 {
		t.Errorf("expiration(nil) should be 0")
	}
	if got := expiration([]int{30}); got != 30*time.Second {
		t.Errorf("expiration(30) = %v", got)
	}
}
