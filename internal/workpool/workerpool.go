package workpool

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/channels"
	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
	"github.com/AbdulWasayUl/graphql-countries/models"
)

const storeTimeout = 30 * time.Second

// ErrSkip is returned by a ParseFunc to drop an item without reporting a failure.
var ErrSkip = errors.New("item skipped")

// Stats counts request outcomes since the pool was created.
type Stats struct {
	Stored  int64
	Skipped int64
	Failed  int64
}

type WorkerPool struct {
	WorkerCount int
	Channels    *channels.Channels

	stored  atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
}

func New(channels *channels.Channels, workerCount int) *WorkerPool {
	return &WorkerPool{
		WorkerCount: workerCount,
		Channels:    channels,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.WorkerCount; i++ {
		go wp.worker(ctx, i)
	}
}

// worker expects every request to have been counted on Channels.WG before
// it was queued (see channels.Submit).
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logger.Debug("Worker %d started.", id)
	for req := range wp.Channels.DataRequest {
		wp.process(ctx, id, req)
	}
	logger.Debug("Worker %d stopped.", id)
}

func (wp *WorkerPool) process(ctx context.Context, id int, req models.DataRequest) {
	defer wp.Channels.WG.Done()

	// 1. Parse Data
	parsed, err := req.ParseFunc(req.Payload)
	if errors.Is(err, ErrSkip) {
		wp.skipped.Add(1)
		logger.Debug("[%s] Worker %d skipped %s: %v", req.Service, id, req.ID, err)
		return
	}
	if err != nil {
		wp.failed.Add(1)
		logger.Error("[%s] Worker %d failed to parse %s: %v", req.Service, id, req.ID, err)
		return
	}

	// 2. Store Data
	opCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := req.StoreFunc(opCtx, parsed); err != nil {
		wp.failed.Add(1)
		logger.Error("[%s] Worker %d failed to store %s: %v", req.Service, id, req.ID, err)
		return
	}

	wp.stored.Add(1)
	logger.Debug("[%s] Worker %d stored %s", req.Service, id, req.ID)
}

// Stop closes the request channel; workers exit once it is drained.
func (wp *WorkerPool) Stop() {
	close(wp.Channels.DataRequest)
}

func (wp *WorkerPool) Stats() Stats {
	return Stats{
		Stored:  wp.stored.Load(),
		Skipped: wp.skipped.Load(),
		Failed:  wp.failed.Load(),
	}
}
