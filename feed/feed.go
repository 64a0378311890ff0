package feed

import (
	"context"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Feed owns the fetch state of one mounted feed. Mount issues the only fetch
// the feed will ever make; the state then moves once from Loading to Success
// or Error and stays there. Unmount releases the mount's cancellation token,
// after which a late result is discarded instead of committed.
type Feed struct {
	fetcher Fetcher
	logger  echo.Logger

	mu     sync.RWMutex
	state  State
	cancel context.CancelFunc
	torn   bool

	mountOnce sync.Once
	doneOnce  sync.Once
	done      chan struct{}
}

// Option configures a Feed.
type Option func(*Feed)

// WithLogger sets the logger used for state transitions.
func WithLogger(l echo.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates an unmounted feed in the Loading state.
func New(fetcher Fetcher, opts ...Option) *Feed {
	f := &Feed{
		fetcher: fetcher,
		logger:  log.New("feed"),
		state:   Loading(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mount starts the fetch in the background. Only the first call has an
// effect; the fetch is bound to a context derived from ctx.
func (f *Feed) Mount(ctx context.Context) {
	f.mountOnce.Do(func() {
		f.mu.Lock()
		if f.torn {
			f.mu.Unlock()
			return
		}
		fetchCtx, cancel := context.WithCancel(ctx)
		f.cancel = cancel
		f.mu.Unlock()

		go f.run(fetchCtx)
	})
}

func (f *Feed) run(ctx context.Context) {
	defer f.closeDone()
	articles, err := f.fetcher.Fetch(ctx)
	f.commit(ctx, articles, err)
}

func (f *Feed) commit(ctx context.Context, articles []Article, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.torn || ctx.Err() != nil {
		f.logger.Debugf("feed torn down before fetch completed; result discarded")
		return
	}
	if f.state.Terminal() {
		return
	}
	if err != nil {
		f.state = Failed(err.Error())
		return
	}
	f.state = Succeeded(articles)
	f.logger.Debugf("feed loaded %d articles", len(articles))
}

// Unmount tears the feed down. An in-flight fetch is cancelled and its
// result, if it still arrives, never reaches the state.
func (f *Feed) Unmount() {
	f.mu.Lock()
	f.torn = true
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	} else {
		f.closeDone()
	}
	// A Mount after Unmount must not start a fetch.
	f.mountOnce.Do(func() {})
}

func (f *Feed) closeDone() {
	f.doneOnce.Do(func() { close(f.done) })
}

// State returns the current fetch state.
func (f *Feed) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Done is closed once the fetch has finished, whether its result was
// committed or discarded, or when the feed is unmounted before mounting.
func (f *Feed) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until Done or ctx expires and returns the state at that point.
func (f *Feed) Wait(ctx context.Context) (State, error) {
	select {
	case <-f.done:
		return f.State(), nil
	case <-ctx.Done():
		return f.State(), ctx.Err()
	}
}
