package metrics

import (
	"context"
	"runtime"
	"time"
)

// RefreshInterval returns how often gauge collectors sample.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// CollectSystem samples heap usage and goroutine count once.
func CollectSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	UpdateSystemMemoryUsage(ms.HeapAlloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
}

// StartSystemCollector samples system gauges every refresh interval until ctx is done.
func StartSystemCollector(ctx context.Context) {
	ticker := time.NewTicker(globalManager.RefreshInterval())
	go func() {
		defer ticker.Stop()
		CollectSystem()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CollectSystem()
			}
		}
	}()
}
