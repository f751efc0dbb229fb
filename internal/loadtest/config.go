// Package loadtest drives a running matching service with generated
// talents and jobs and checks every response it gets back.
package loadtest

import (
	"runtime"
	"time"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultRequests       = 200
	DefaultTalentsPerCall = 5
	DefaultJobsPerCall    = 20
	DefaultTimeout        = 30 * time.Second
	workerChannelFactor   = 2
)

// Config holds configuration for a load test run.
type Config struct {
	BaseURL  string        // service base URL
	Requests int           // number of requests to send
	Talents  int           // talents per match_bulk request
	Jobs     int           // jobs per request
	Workers  int           // concurrent senders
	Timeout  time.Duration // per-request timeout
	Seed     uint64        // generator seed, 0 picks one from the clock
	Verbose  bool
}

func (c Config) withDefaults() Config {
	if c.Requests <= 0 {
		c.Requests = DefaultRequests
	}
	if c.Talents <= 0 {
		c.Talents = DefaultTalentsPerCall
	}
	if c.Jobs <= 0 {
		c.Jobs = DefaultJobsPerCall
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU() * workerChannelFactor
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
	return c
}

// Stats holds the outcome of a run.
type Stats struct {
	Generated  int            `json:"generated"`
	Submitted  int            `json:"submitted"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Invalid    int            `json:"invalid"`
	Results    int            `json:"results"`
	ByEndpoint map[string]int `json:"by_endpoint"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	Duration   time.Duration  `json:"duration"`
	Throughput float64        `json:"requests_per_second"`
}
