package services

import (
	"sync"

	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// ReportCache holds the most recent report seen by the process. Last write
// wins and there is no per-user isolation: every submission or callback,
// from any user, replaces the value every poller sees.
type ReportCache struct {
	mu     sync.RWMutex
	latest string
}

// NewReportCache starts with the "no analysis yet" placeholder
func NewReportCache() *ReportCache {
	return &ReportCache{latest: models.ReportPending}
}

func (c *ReportCache) SetLatest(report string) {
	c.mu.Lock()
	c.latest = report
	c.mu.Unlock()
}

func (c *ReportCache) Latest() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}
