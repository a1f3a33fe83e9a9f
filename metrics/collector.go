package metrics

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marketedge/bootkit/logger"
)

// Sample is one timed startup operation. Once closed it is read-only.
type Sample struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	StartTime    time.Time              `json:"start_time"`
	EndTime      *time.Time             `json:"end_time,omitempty"`
	Duration     time.Duration          `json:"duration"`
	Success      bool                   `json:"success"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// Collector records timing samples for startup operations. Samples are
// retained in memory for the process lifetime. Safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	open   map[string]*Sample
	closed []*Sample
	log    *logger.Logger
}

// NewCollector creates an empty collector. A nil logger falls back to
// the package default.
func NewCollector(log *logger.Logger) *Collector {
	if log == nil {
		log = logger.Default()
	}
	return &Collector{
		open: make(map[string]*Sample),
		log:  log.WithComponent("metrics"),
	}
}

// Start opens a sample for the named operation. Starting a name that is
// already open overwrites the earlier sample; the earlier timing is
// lost. This mirrors restart-heavy startup paths and is logged, not
// rejected.
func (c *Collector) Start(name string, metadata map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.open[name]; exists {
		c.log.Warn("Sample already open, overwriting", map[string]interface{}{
			logger.FieldOperation: name,
		})
	}

	c.open[name] = &Sample{
		ID:        uuid.NewString(),
		Name:      name,
		StartTime: time.Now(),
		Metadata:  metadata,
	}
}

// End closes the named sample, computing its duration. Ending a name
// that was never started is a no-op with an error log.
func (c *Collector) End(name string, success bool, errorMessage string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sample, exists := c.open[name]
	if !exists {
		c.log.Error("End called for unknown sample", map[string]interface{}{
			logger.FieldOperation: name,
		})
		return
	}
	delete(c.open, name)

	now := time.Now()
	sample.EndTime = &now
	sample.Duration = now.Sub(sample.StartTime)
	sample.Success = success
	sample.ErrorMessage = errorMessage
	c.closed = append(c.closed, sample)
}

// Track times fn as a single sample, recording the outcome on every exit
// path. A panic inside fn is recorded as a failed sample and re-raised.
func (c *Collector) Track(name string, metadata map[string]interface{}, fn func() error) error {
	c.Start(name, metadata)

	var err error
	defer func() {
		if r := recover(); r != nil {
			c.End(name, false, "panic during tracked operation")
			panic(r)
		}
		if err != nil {
			c.End(name, false, err.Error())
		} else {
			c.End(name, true, "")
		}
	}()

	err = fn()
	return err
}

// Samples returns a copy of all closed samples in completion order.
func (c *Collector) Samples() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Sample, 0, len(c.closed))
	for _, s := range c.closed {
		out = append(out, *s)
	}
	return out
}
