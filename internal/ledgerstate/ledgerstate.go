// Package ledgerstate provides the latest-ledger-sequence collaborator used
// to derive the expired flag on contract data entries. The sequence comes
// from the Stellar RPC health endpoint and is cached for a short TTL, so
// callers should assume it may lag reality by a few seconds.
package ledgerstate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storageapi/internal/ledgerstate/retry"
	"storageapi/internal/metrics"

	rpcclient "github.com/stellar/go/clients/rpcclient"
)

// Source exposes the latest closed ledger sequence
type Source interface {
	GetLatestLedgerSequence(ctx context.Context) (uint32, error)
}

// Client is a caching Source backed by a Stellar RPC server
type Client struct {
	fetch    func(ctx context.Context) (uint32, error)
	strategy retry.Strategy
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sequence uint32
	expires  time.Time
}

// NewClient creates a caching latest-ledger client over a Stellar RPC
// client. Transient RPC failures are retried per the supplied strategy.
func NewClient(rpc *rpcclient.Client, ttl time.Duration, strategy retry.Strategy) *Client {
	return &Client{
		fetch: func(ctx context.Context) (uint32, error) {
			health, err := rpc.GetHealth(ctx)
			if err != nil {
				return 0, fmt.Errorf("failed to get health from RPC: %w", err)
			}
			return health.LatestLedger, nil
		},
		strategy: strategy,
		ttl:      ttl,
		now:      time.Now,
	}
}

// GetLatestLedgerSequence returns the cached sequence while it is fresh,
// otherwise performs one RPC round trip and refreshes the cache.
func (c *Client) GetLatestLedgerSequence(ctx context.Context) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sequence != 0 && c.now().Before(c.expires) {
		metrics.LedgerCacheHits.Inc()
		return c.sequence, nil
	}

	metrics.LedgerCacheMisses.Inc()

	var sequence uint32
	err := c.strategy.Execute(ctx, func() error {
		seq, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		sequence = seq
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch latest ledger sequence: %w", err)
	}

	c.sequence = sequence
	c.expires = c.now().Add(c.ttl)

	return sequence, nil
}
