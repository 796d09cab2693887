package game

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"gesturegame/shared"
)

// DefaultPollInterval matches the recognizer's expected poll rate.
const DefaultPollInterval = 100 * time.Millisecond

// Fetcher asks the recognizer for its latest gesture.
type Fetcher func(ctx context.Context) (shared.Gesture, error)

// Result is the outcome of one poll.
type Result struct {
	Gesture shared.Gesture
	Err     error
}

// Poller fetches a gesture on every tick of its clock. A slow fetch does not
// hold back the next tick, so several fetches may be in flight at once.
type Poller struct {
	clock    clock.Clock
	interval time.Duration
	fetch    Fetcher
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPoller(clk clock.Clock, interval time.Duration, fetch Fetcher, log *zap.Logger) *Poller {
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{clock: clk, interval: interval, fetch: fetch, log: log}
}

// Start begins polling and returns the channel results arrive on. The
// channel is closed once Stop has returned or ctx is done and every fetch
// has finished.
func (p *Poller) Start(ctx context.Context) <-chan Result {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	out := make(chan Result, 16)
	ticker := p.clock.Ticker(p.interval)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.wg.Add(1)
				go p.poll(ctx, out)
			}
		}
	}()

	go func() {
		p.wg.Wait()
		close(out)
	}()

	p.log.Debug("poller started", zap.Duration("interval", p.interval))
	return out
}

func (p *Poller) poll(ctx context.Context, out chan<- Result) {
	defer p.wg.Done()
	g, err := p.fetch(ctx)
	if ctx.Err() != nil {
		return
	}
	select {
	case out <- Result{Gesture: g, Err: err}:
	case <-ctx.Done():
	}
}

// Stop cancels the ticker and any in-flight fetches and waits for them.
// Calling it more than once is fine.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
}
