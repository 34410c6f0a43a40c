package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueRestock = "jobs:restock"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type       string `json:"type"`
	EnqueuedAt string `json:"enqueued_at"` // ISO 8601
}

// Recomputer rebuilds the restock-prediction snapshot. The prediction
// service implements it; the worker package only sees this interface.
type Recomputer interface {
	Recompute(ctx context.Context) error
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool
// dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRestockRecompute queues a prediction rebuild. Inventory and
// sales writes call this after every stock-affecting change.
func (d *Dispatcher) EnqueueRestockRecompute(ctx context.Context) error {
	job := Job{Type: "restock_recompute", EnqueuedAt: time.Now().UTC().Format(time.RFC3339)}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueRestock, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the restock
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, recomputer Recomputer, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, recomputer, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, recomputer Recomputer, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueRestock).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, recomputer, result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, recomputer Recomputer, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("worker: failed to unmarshal job")
		return
	}

	// Writes arrive in bursts; once one rebuild is running, the queued
	// duplicates behind it are redundant. Drain them before working.
	if n, err := rdb.Del(ctx, QueueRestock).Result(); err == nil && n > 0 {
		log.Debug().Int64("collapsed", n).Msg("worker: collapsed queued recompute jobs")
	}

	start := time.Now()
	if err := recomputer.Recompute(ctx); err != nil {
		log.Error().Err(err).Msg("worker: restock recompute failed")
		return
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("worker: restock predictions recomputed")
}
