package metrics

import (
	"fmt"
	"time"
)

// Summary aggregates closed samples. Recommendations are advisory text
// only and have no control-flow effect.
type Summary struct {
	Total           int           `json:"total"`
	Succeeded       int           `json:"succeeded"`
	Failed          int           `json:"failed"`
	AvgDuration     time.Duration `json:"avg_duration"`
	MinDuration     time.Duration `json:"min_duration"`
	MaxDuration     time.Duration `json:"max_duration"`
	SlowestName     string        `json:"slowest_name,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

// slowSampleThreshold flags operations worth deferring or parallelizing.
const slowSampleThreshold = time.Second

// Summary aggregates all closed samples into counts, duration
// statistics, and simple threshold-derived recommendations.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{Total: len(c.closed)}
	if s.Total == 0 {
		return s
	}

	var totalDuration time.Duration
	s.MinDuration = c.closed[0].Duration

	for _, sample := range c.closed {
		if sample.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
		totalDuration += sample.Duration
		if sample.Duration < s.MinDuration {
			s.MinDuration = sample.Duration
		}
		if sample.Duration > s.MaxDuration {
			s.MaxDuration = sample.Duration
			s.SlowestName = sample.Name
		}
	}
	s.AvgDuration = totalDuration / time.Duration(s.Total)

	if s.MaxDuration >= slowSampleThreshold {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"slowest operation %q took %.2fs; consider deferring it or initializing it lazily",
			s.SlowestName, s.MaxDuration.Seconds()))
	}
	if s.Failed > 0 {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"%d startup operation(s) failed; check dependency availability before cold start",
			s.Failed))
	}

	return s
}
