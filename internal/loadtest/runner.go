package loadtest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/talentmatch/pkg/logger"
)

const progressInterval = time.Second

// Run health-checks the service, generates cfg.Requests requests, sends
// them with cfg.Workers concurrent senders and verifies every response.
// It returns ErrVerification when any response broke ordering or filtering.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	cfg = cfg.withDefaults()
	log := logger.Named("loadtest")
	stats := Stats{StartTime: time.Now(), ByEndpoint: map[string]int{}}

	log.Info(ctx, "starting load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Int("talents", cfg.Talents),
		logger.Int("jobs", cfg.Jobs),
		logger.Duration("timeout", cfg.Timeout))

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	gen := NewGenerator(cfg.Seed)
	requests := make([]Request, cfg.Requests)
	for i := range requests {
		requests[i] = gen.Request(i, cfg.Talents, cfg.Jobs)
		stats.ByEndpoint[requests[i].Endpoint]++
	}
	stats.Generated = len(requests)

	send(ctx, cfg, client, requests, &stats, log)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	if secs := stats.Duration.Seconds(); secs > 0 {
		stats.Throughput = float64(stats.Submitted) / secs
	}

	log.Info(ctx, "load test completed",
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("invalid", stats.Invalid),
		logger.Int("results", stats.Results),
		logger.Duration("duration", stats.Duration),
		logger.Float64("rps", stats.Throughput))

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Invalid > 0 {
		return stats, fmt.Errorf("%w: %d of %d responses", ErrVerification, stats.Invalid, stats.Successful+stats.Invalid)
	}
	return stats, nil
}

// send fans requests out to cfg.Workers goroutines and tallies outcomes.
func send(ctx context.Context, cfg Config, client *Client, requests []Request, stats *Stats, log logger.Logger) {
	var submitted, successful, failed, invalid, results atomic.Int64
	var lastReport atomic.Int64

	ch := make(chan Request, cfg.Workers*workerChannelFactor)
	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range ch {
				if ctx.Err() != nil {
					continue
				}
				res, err := client.Post(ctx, r)
				submitted.Add(1)
				if err != nil {
					failed.Add(1)
					if cfg.Verbose {
						log.Warn(ctx, "request failed", logger.String("endpoint", r.Endpoint), logger.Error(err))
					}
				} else {
					results.Add(int64(len(res)))
					if verr := Verify(r, res); verr != nil {
						invalid.Add(1)
						log.Error(ctx, "invalid response", logger.String("endpoint", r.Endpoint), logger.Error(verr))
					} else {
						successful.Add(1)
					}
				}

				now := time.Now().UnixNano()
				last := lastReport.Load()
				if now-last >= int64(progressInterval) && lastReport.CompareAndSwap(last, now) {
					log.Info(ctx, "progress",
						logger.Int("submitted", int(submitted.Load())),
						logger.Int("total", len(requests)),
						logger.Int("failed", int(failed.Load())),
						logger.Int("invalid", int(invalid.Load())))
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, r := range requests {
			select {
			case <-ctx.Done():
				return
			case ch <- r:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Successful = int(successful.Load())
	stats.Failed = int(failed.Load())
	stats.Invalid = int(invalid.Load())
	stats.Results = int(results.Load())
}
