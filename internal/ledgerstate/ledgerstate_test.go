package ledgerstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"storageapi/internal/ledgerstate/retry"
)

func testClient(fetch func(ctx context.Context) (uint32, error), ttl time.Duration, now *time.Time) *Client {
	return &Client{
		fetch:    fetch,
		strategy: retry.NewNoRetryStrategy(),
		ttl:      ttl,
		now:      func() time.Time { return *now },
	}
}

func TestGetLatestLedgerSequenceCachesWithinTTL(t *testing.T) {
	calls := 0
	current := time.Unix(1000, 0)
	c := testClient(func(ctx context.Context) (uint32, error) {
		calls++
		return 900 + uint32(calls), nil
	}, 5*time.Second, &current)

	seq, err := c.GetLatestLedgerSequence(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if seq != 901 {
		t.Errorf("Expected sequence 901, got: %d", seq)
	}

	// Second lookup inside the TTL is served from the cache
	current = current.Add(3 * time.Second)
	seq, err = c.GetLatestLedgerSequence(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if seq != 901 {
		t.Errorf("Expected cached sequence 901, got: %d", seq)
	}
	if calls != 1 {
		t.Errorf("Expected 1 RPC call, got: %d", calls)
	}
}

func TestGetLatestLedgerSequenceRefreshesAfterTTL(t *testing.T) {
	calls := 0
	current := time.Unix(1000, 0)
	c := testClient(func(ctx context.Context) (uint32, error) {
		calls++
		return 900 + uint32(calls), nil
	}, 5*time.Second, &current)

	if _, err := c.GetLatestLedgerSequence(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	current = current.Add(6 * time.Second)
	seq, err := c.GetLatestLedgerSequence(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if seq != 902 {
		t.Errorf("Expected refreshed sequence 902, got: %d", seq)
	}
	if calls != 2 {
		t.Errorf("Expected 2 RPC calls, got: %d", calls)
	}
}

func TestGetLatestLedgerSequencePropagatesError(t *testing.T) {
	current := time.Unix(1000, 0)
	c := testClient(func(ctx context.Context) (uint32, error) {
		return 0, errors.New("invalid response")
	}, 5*time.Second, &current)

	if _, err := c.GetLatestLedgerSequence(context.Background()); err == nil {
		t.Error("Expected error from failed RPC lookup")
	}
}

func TestGetLatestLedgerSequenceErrorIsNotCached(t *testing.T) {
	calls := 0
	current := time.Unix(1000, 0)
	c := testClient(func(ctx context.Context) (uint32, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("invalid response")
		}
		return 950, nil
	}, 5*time.Second, &current)

	if _, err := c.GetLatestLedgerSequence(context.Background()); err == nil {
		t.Fatal("Expected error on first lookup")
	}

	seq, err := c.GetLatestLedgerSequence(context.Background())
	if err != nil {
		t.Fatalf("Expected recovery on second lookup, got: %v", err)
	}
	if seq != 950 {
		t.Errorf("Expected sequence 950, got: %d", seq)
	}
}
