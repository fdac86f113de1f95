package sensors

import (
	"context"
	"sync"
	"time"

	"github.com/agrodash/plot-api/internal/constants"
	"github.com/agrodash/plot-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher returns the current averaged value of one sensor feed.
type Fetcher interface {
	Average(ctx context.Context, source string) (*float64, error)
}

// Reading is the averaged value of one sensor. Value is nil when the feed
// failed, was unparseable or was empty during that poll.
type Reading struct {
	Kind  models.SensorKind
	Unit  string
	Value *float64
}

// Snapshot is the outcome of one poll across every sensor.
type Snapshot struct {
	UpdatedAt time.Time
	Readings  []Reading
}

// Poller polls every sensor on a fixed interval and keeps the newest
// snapshot. Ticks never wait for earlier polls: a slow poll overlaps the next
// one, and whichever started last wins.
type Poller struct {
	fetcher  Fetcher
	sensors  []models.Sensor
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.RWMutex
	latest    Snapshot
	latestSeq uint64
	hasData   bool
}

// NewPoller creates a Poller. A non-positive interval falls back to the
// default of three seconds.
func NewPoller(fetcher Fetcher, sensors []models.Sensor, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = constants.DefaultSensorPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		fetcher:  fetcher,
		sensors:  append([]models.Sensor(nil), sensors...),
		interval: interval,
		timeout:  constants.DefaultSensorFetchTimeout,
		logger:   logger,
		now:      time.Now,
	}
}

// Run polls immediately and then on every tick until ctx is cancelled. It
// returns once all in-flight polls have finished.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()

	var seq uint64
	launch := func() {
		seq++
		n := seq
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot := p.PollOnce(ctx)
			if ctx.Err() != nil {
				return
			}
			p.store(n, snapshot)
		}()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	launch()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			launch()
		}
	}
}

// PollOnce fetches every sensor concurrently and returns the result without
// storing it.
func (p *Poller) PollOnce(ctx context.Context) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	readings := make([]Reading, len(p.sensors))
	var g errgroup.Group
	for i, s := range p.sensors {
		readings[i] = Reading{Kind: s.Kind, Unit: s.Unit}
		g.Go(func() error {
			value, err := p.fetcher.Average(ctx, s.Source)
			if err != nil {
				p.logger.Debug("sensor poll failed",
					zap.String("sensor", string(s.Kind)),
					zap.Error(err))
				return nil
			}
			readings[i].Value = value
			return nil
		})
	}
	_ = g.Wait()

	return Snapshot{UpdatedAt: p.now(), Readings: readings}
}

// Latest returns the newest stored snapshot. ok is false before the first
// poll completes.
func (p *Poller) Latest() (snapshot Snapshot, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.hasData
}

func (p *Poller) store(seq uint64, snapshot Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq < p.latestSeq {
		return
	}
	p.latest = snapshot
	p.latestSeq = seq
	p.hasData = true
}
