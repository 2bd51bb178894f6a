package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dawichi/hexastats/internal/platform/logging"
	"github.com/Dawichi/hexastats/internal/platform/resilience"
	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultWriteWorkers = 8
	writeTimeout        = 5 * time.Second
)

// Entry is a cached payload together with the moment it was written.
type Entry struct {
	Value    []byte
	StoredAt time.Time
}

// Backend is the storage behind the front door. Get reports a miss with ok=false and a nil error.
type Backend interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, keys ...string) error
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

type Options struct {
	Enabled      bool
	WriteWorkers int
	Logger       *logging.Logger
	Now          func() time.Time
}

// FrontDoor is a lookaside cache with per-call TTLs. Reads never fail because of the
// backend: read errors count as misses and writes happen in the background.
// Until a background write lands, lookups are served from the unwritten entry.
type FrontDoor struct {
	backend  Backend
	enabled  bool
	pool     *ants.Pool
	flight   resilience.SingleFlight[[]byte]
	pending  sync.WaitGroup
	unlanded sync.Map // key -> *Entry
	logger   *logging.Logger
	now      func() time.Time
}

func NewFrontDoor(backend Backend, opts Options) (*FrontDoor, error) {
	if backend == nil {
		return nil, fmt.Errorf("cache backend is required")
	}
	if opts.WriteWorkers <= 0 {
		opts.WriteWorkers = defaultWriteWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger.Named("cache")
	pool, err := ants.NewPool(opts.WriteWorkers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p any) {
			logger.Error("cache write panicked", "panic", fmt.Sprint(p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create cache write pool: %w", err)
	}

	return &FrontDoor{
		backend: backend,
		enabled: opts.Enabled,
		pool:    pool,
		logger:  logger,
		now:     opts.Now,
	}, nil
}

// Lookup returns the cached value for key when it is younger than ttl.
func (d *FrontDoor) Lookup(ctx context.Context, key string, ttl time.Duration) ([]byte, bool) {
	if !d.enabled || key == "" || ttl <= 0 {
		return nil, false
	}

	if v, ok := d.unlanded.Load(key); ok {
		if entry := v.(*Entry); d.now().Sub(entry.StoredAt) < ttl {
			return entry.Value, true
		}
	}

	entry, ok, err := d.backend.Get(ctx, key)
	if err != nil {
		d.logger.WarnContext(ctx, "cache read failed, treating as miss", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if d.now().Sub(entry.StoredAt) >= ttl {
		return nil, false
	}
	return entry.Value, true
}

// GetOrComputeBytes serves key from the cache while it is younger than ttl. On a miss it
// runs compute once per key among concurrent callers and schedules the write.
// A ttl <= 0 bypasses the cache.
func (d *FrontDoor) GetOrComputeBytes(
	ctx context.Context,
	key string,
	ttl time.Duration,
	compute func(context.Context) ([]byte, error),
) ([]byte, error) {
	if compute == nil {
		return nil, fmt.Errorf("compute is required")
	}
	if !d.enabled || key == "" || ttl <= 0 {
		return compute(ctx)
	}

	if value, ok := d.Lookup(ctx, key, ttl); ok {
		return value, nil
	}

	value, err, _ := d.flight.Do(key, func() ([]byte, error) {
		if cached, ok := d.Lookup(ctx, key, ttl); ok {
			return cached, nil
		}

		computed, computeErr := compute(ctx)
		if computeErr != nil {
			return nil, computeErr
		}
		d.store(ctx, key, computed)
		return computed, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// GetOrCompute is GetOrComputeBytes for values that round-trip through JSON.
func GetOrCompute[T any](
	ctx context.Context,
	d *FrontDoor,
	key string,
	ttl time.Duration,
	compute func(context.Context) (T, error),
) (T, error) {
	var out T
	raw, err := d.GetOrComputeBytes(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return sonic.Marshal(value)
	})
	if err != nil {
		return out, err
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode cached value %q: %w", key, err)
	}
	return out, nil
}

func (d *FrontDoor) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	for _, key := range keys {
		d.flight.Forget(key)
		d.unlanded.Delete(key)
	}
	if err := d.backend.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate cache keys: %w", err)
	}
	return nil
}

// Prune removes entries written more than retention ago.
func (d *FrontDoor) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	removed, err := d.backend.Prune(ctx, d.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return removed, nil
}

// Wait blocks until every scheduled write has finished.
func (d *FrontDoor) Wait() {
	d.pending.Wait()
}

func (d *FrontDoor) Close() {
	d.Wait()
	d.pool.Release()
}

func (d *FrontDoor) store(ctx context.Context, key string, value []byte) {
	entry := &Entry{Value: value, StoredAt: d.now()}
	writeCtx := context.WithoutCancel(ctx)

	d.unlanded.Store(key, entry)
	d.pending.Add(1)
	err := d.pool.Submit(func() {
		defer d.pending.Done()
		defer d.unlanded.CompareAndDelete(key, entry)

		ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
		defer cancel()
		if err := d.backend.Set(ctx, key, *entry); err != nil {
			d.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		}
	})
	if err != nil {
		d.pending.Done()
		d.unlanded.CompareAndDelete(key, entry)
		d.logger.WarnContext(ctx, "cache write dropped", "key", key, "error", err)
	}
}
