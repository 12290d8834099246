// Package syncengine reconciles the in-memory item collection with a remote
// REST store and a local durable cache. The cache is authoritative for
// reads; remote writes are fire-and-forget and remote failures always
// degrade to whatever is already held locally.
package syncengine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
)

// DefaultTimeout bounds each remote call.
const DefaultTimeout = 15 * time.Second

// Op identifies a persistence operation.
type Op string

// Persistence operations.
const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// RemoteStore is the remote authoritative item store.
type RemoteStore interface {
	List(ctx context.Context) ([]*collection.Item, error)
	Create(ctx context.Context, item *collection.Item) error
	Update(ctx context.Context, item *collection.Item) error
	Delete(ctx context.Context, id string) error
}

// Cache is the local durable cache of the serialized collection.
type Cache interface {
	Load() ([]*collection.Item, error)
	Save(items []*collection.Item) error
}

// Engine owns the cache/remote write lifecycle. It is the only component
// that performs network I/O for persistence.
type Engine struct {
	cache   Cache
	remote  RemoteStore
	timeout time.Duration
	log     *zerolog.Logger

	// writes tracks in-flight fire-and-forget remote writes.
	writes sync.WaitGroup

	mu        sync.Mutex
	lastCount int

	resyncTicker *time.Ticker
	resyncCancel context.CancelFunc
	stopCh       chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-call remote timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// New creates a sync engine over the given cache and remote store.
func New(cache Cache, remote RemoteStore, opts ...Option) *Engine {
	e := &Engine{
		cache:   cache,
		remote:  remote,
		timeout: DefaultTimeout,
		log:     logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load reads the local cache, then attempts a remote fetch. The remote
// result is adopted only when it is non-empty and either the local cache is
// empty or the remote holds strictly more items; otherwise local state wins.
// A transient short or empty remote response therefore never destroys
// richer local state, and the collection can never shrink through Load.
// Failures on either side degrade to the other; Load always returns a
// usable collection.
func (e *Engine) Load(ctx context.Context) *collection.Items {
	local, err := e.cache.Load()
	if err != nil {
		e.log.Warn().Err(err).Msg("cache read failed, starting empty")
		local = nil
	}

	result := local

	remoteCtx, cancel := context.WithTimeout(ctx, e.timeout)
	remote, err := e.remote.List(remoteCtx)
	cancel()
	switch {
	case err != nil:
		e.log.Warn().Err(err).Msg("remote fetch failed, keeping local state")
	case len(remote) > 0 && (len(local) == 0 || len(remote) > len(local)):
		e.log.Info().
			Int("local", len(local)).
			Int("remote", len(remote)).
			Msg("adopting remote collection")
		result = remote
		if err := e.cache.Save(remote); err != nil {
			e.log.Warn().Err(err).Msg("cache write-back failed")
		}
	default:
		e.log.Debug().
			Int("local", len(local)).
			Int("remote", len(remote)).
			Msg("keeping local collection")
	}

	items := collection.NewItems(collection.WithItemsList(result))

	e.mu.Lock()
	e.lastCount = items.Len()
	e.mu.Unlock()

	return items
}

// Persist updates the local cache synchronously with the full snapshot and
// dispatches the corresponding remote call asynchronously. Remote failures
// are logged and dropped; they never reach the caller and are not retried.
func (e *Engine) Persist(snapshot []*collection.Item, item *collection.Item, op Op) {
	if err := e.cache.Save(snapshot); err != nil {
		e.log.Error().Err(err).Str("op", string(op)).Msg("cache write failed")
	}

	e.mu.Lock()
	e.lastCount = len(snapshot)
	e.mu.Unlock()

	changed := item.Copy()
	e.writes.Add(1)
	go func() {
		defer e.writes.Done()

		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()

		if err := e.remoteWrite(ctx, changed, op); err != nil {
			e.log.Warn().
				Err(err).
				Str("op", string(op)).
				Str("item_id", changed.ID).
				Msg("remote write dropped")
		}
	}()
}

// remoteWrite performs one remote mutation. An update rejected because the
// item does not exist remotely yet falls back to a create.
func (e *Engine) remoteWrite(ctx context.Context, item *collection.Item, op Op) error {
	switch op {
	case OpCreate:
		return errors.WrapSync("create", item.ID, e.remote.Create(ctx, item))
	case OpUpdate:
		err := e.remote.Update(ctx, item)
		if errors.IsNotFound(err) {
			err = e.remote.Create(ctx, item)
		}
		return errors.WrapSync("update", item.ID, err)
	case OpDelete:
		return errors.WrapSync("delete", item.ID, e.remote.Delete(ctx, item.ID))
	default:
		return errors.NewValidationError("op", op, "unknown persistence operation")
	}
}

// Flush blocks until all in-flight remote writes have completed.
func (e *Engine) Flush() {
	e.writes.Wait()
}

// ResyncOn starts periodic background re-pulls. After each Load, onChange
// is invoked with the merged collection whenever its size differs from the
// count held at the previous pull. Stops any resync already running.
func (e *Engine) ResyncOn(interval time.Duration, onChange func(items *collection.Items)) error {
	if interval <= 0 {
		return errors.NewValidationError("interval", interval, "resync interval must be positive")
	}

	e.ResyncOff()

	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	e.resyncTicker = ticker
	e.resyncCancel = cancel
	e.stopCh = stop
	e.mu.Unlock()

	// The goroutine only touches the captured locals so that ResyncOff can
	// swap the fields out from under it without a race.
	go func() {
		for {
			select {
			case <-ticker.C:
				e.mu.Lock()
				before := e.lastCount
				e.mu.Unlock()

				items := e.Load(ctx)
				if items.Len() != before {
					e.log.Info().
						Int("before", before).
						Int("after", items.Len()).
						Msg("background resync detected change")
					if onChange != nil {
						onChange(items)
					}
				}
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// ResyncOff stops background re-pulls. Safe to call when no resync is
// running and safe to call concurrently with an in-flight pull.
func (e *Engine) ResyncOff() {
	e.mu.Lock()
	ticker := e.resyncTicker
	cancel := e.resyncCancel
	stop := e.stopCh
	e.resyncTicker = nil
	e.resyncCancel = nil
	e.stopCh = nil
	e.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	if cancel != nil {
		cancel()
	}
	if stop != nil {
		close(stop)
	}
}

// Close stops background work and waits for in-flight remote writes.
func (e *Engine) Close() {
	e.ResyncOff()
	e.Flush()
}
