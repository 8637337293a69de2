// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package redisqueue implements the persistent, process-restart-safe retry
list the image pipeline uses when a blob removal fails: on removal
failure the path the caller passes is enqueued into a persistent retry
list keyed remove_file_failed_queue. The image service passes the
storage-relative Image.Path value, not an absolute filesystem path.

The core's responsibility ends at a successful enqueue — an external
worker, orchestrated but not implemented here, drains the list and
retries the actual blob removal.
*/
package redisqueue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
)

// RemovalQueue enqueues failed blob-removal paths onto a Redis list.
type RemovalQueue struct {
	client *redis.Client
	key    string
}

// NewRemovalQueue constructs a [RemovalQueue] backed by client, using the
// canonical `remove_file_failed_queue` key.
func NewRemovalQueue(client *redis.Client) *RemovalQueue {
	return &RemovalQueue{client: client, key: constants.RedisKeyRemoveFileFailedQueue}
}

// Enqueue appends absolutePath to the retry list. A failure is returned
// to the caller; the image service returns it from inside its
// transaction, so the reference and row removal that triggered it are
// rolled back.
func (q *RemovalQueue) Enqueue(ctx context.Context, absolutePath string) error {
	if err := q.client.RPush(ctx, q.key, absolutePath).Err(); err != nil {
		return fmt.Errorf("redisqueue: failed to enqueue %s: %w", absolutePath, err)
	}
	return nil
}

// Len reports the current backlog size, useful for health/metrics surfaces.
func (q *RemovalQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redisqueue: failed to read queue length: %w", err)
	}
	return n, nil
}

// Drain pops up to max entries from the front of the list, for use by the
// (external) retry worker. Returning fewer than max is not an error; it
// means the backlog was shorter than requested.
func (q *RemovalQueue) Drain(ctx context.Context, max int64) ([]string, error) {
	paths, err := q.client.LPopCount(ctx, q.key, int(max)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("redisqueue: failed to drain queue: %w", err)
	}
	return paths, nil
}
