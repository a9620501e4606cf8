// Package numerator provides human-readable document numbers such as
// HO-2026-00001.
package numerator

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strategy defines the numbering generation strategy.
type Strategy int

const (
	// StrategyStrict asks the Sequencer for every number.
	// Guarantees sequential numbers without gaps.
	StrategyStrict Strategy = iota

	// StrategyCached reserves ranges of numbers at once.
	// May produce gaps if the process restarts mid-range.
	StrategyCached
)

// Options configuration for number generation.
type Options struct {
	Strategy Strategy
	// RangeSize is the number of values reserved at once in Cached strategy.
	// Default is 50.
	RangeSize int64
}

// DefaultOptions returns standard options (Strict).
func DefaultOptions() *Options {
	return &Options{Strategy: StrategyStrict}
}

// Sequencer hands out the last value of a reserved block for key.
// Reserve(key, 1) returns the next value; Reserve(key, n) bumps by n.
type Sequencer interface {
	Reserve(key string, n int64) int64
	Set(key string, value int64)
}

// MemorySequencer keeps sequences in process memory.
type MemorySequencer struct {
	mu   sync.Mutex
	vals map[string]int64
}

// NewMemorySequencer creates an empty sequencer.
func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{vals: make(map[string]int64)}
}

// Reserve implements Sequencer.
func (m *MemorySequencer) Reserve(key string, n int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] += n
	return m.vals[key]
}

// Set implements Sequencer.
func (m *MemorySequencer) Set(key string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
}

type cachedRange struct {
	current int64
	max     int64
}

// Service formats numbers drawn from a Sequencer.
type Service struct {
	seq Sequencer

	cacheMu sync.Mutex
	ranges  map[string]*cachedRange
}

// New creates a numerator over seq.
func New(seq Sequencer) *Service {
	return &Service{seq: seq, ranges: make(map[string]*cachedRange)}
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "HO", "SL")
	Prefix string

	// IncludeYear adds year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// GetNextNumber generates the next number for period.
// Pattern: PREFIX-YEAR-XXXXX (e.g., HO-2026-00001)
func (s *Service) GetNextNumber(cfg Config, opts *Options, period time.Time) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	key := buildKey(cfg, period)

	var num int64
	switch opts.Strategy {
	case StrategyCached:
		num = s.getNextCached(key, opts)
	default:
		num = s.seq.Reserve(key, 1)
	}
	return formatNumber(cfg, period, num)
}

func (s *Service) getNextCached(key string, opts *Options) int64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, ok := s.ranges[key]
	if !ok {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}

	if rng.current >= rng.max {
		size := opts.RangeSize
		if size <= 0 {
			size = 50
		}
		newMax := s.seq.Reserve(key, size)
		// Range is (newMax-size, newMax].
		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current
}

// SetNextNumber makes the following number value+1 and drops any cached range.
func (s *Service) SetNextNumber(cfg Config, period time.Time, value int64) {
	key := buildKey(cfg, period)
	s.seq.Set(key, value)

	s.cacheMu.Lock()
	delete(s.ranges, key)
	s.cacheMu.Unlock()
}

// Next generates the next number using default config with prefix.
func (s *Service) Next(prefix string) string {
	return s.GetNextNumber(DefaultConfig(prefix), nil, time.Now())
}

func buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

func formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts numeric part from formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	i := strings.LastIndex(formatted, "-")
	if i < 0 || i == len(formatted)-1 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[i+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
