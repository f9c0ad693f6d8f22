// Package feed keeps in-memory snapshots of Realtime Database paths
// current. It carries the portal's subscription contract server-side: a
// subscriber gets the current value of a path and every subsequent change
// until it unsubscribes. Changes are detected by polling on a cron schedule
// and diffing checksums; paths refresh independently, and a failing path
// keeps its last snapshot rather than failing the others.
package feed

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/roamerv/dealer-backend/internal/errs"
)

// Getter reads the raw value at a database path.
type Getter interface {
	GetRaw(ctx context.Context, path string) (json.RawMessage, error)
}

// Handler receives a snapshot for a path. Handlers run one at a time on a
// single delivery loop; they must not block on the watcher itself.
type Handler func(path string, snapshot json.RawMessage)

// RefreshHook observes each path refresh; used to feed metrics.
type RefreshHook func(path string, ok bool)

type snapshot struct {
	sum    [sha256.Size]byte
	raw    json.RawMessage
	loaded bool
}

type Watcher struct {
	getter Getter
	log    *slog.Logger
	cron   *cron.Cron
	hook   RefreshHook

	mu     sync.Mutex
	subs   map[string]map[int]Handler
	snaps  map[string]snapshot
	nextID int

	deliver chan func()
	done    chan struct{}
}

// New builds a watcher polling on the given cron spec (e.g. "@every 30s").
func New(getter Getter, log *slog.Logger, pollSpec string, hook RefreshHook) (*Watcher, error) {
	w := &Watcher{
		getter:  getter,
		log:     log,
		cron:    cron.New(),
		hook:    hook,
		subs:    make(map[string]map[int]Handler),
		snaps:   make(map[string]snapshot),
		deliver: make(chan func(), 64),
		done:    make(chan struct{}),
	}
	if _, err := w.cron.AddFunc(pollSpec, func() {
		w.RefreshAll(context.Background())
	}); err != nil {
		return nil, errs.NewConfigError("FEEDPOLLSPEC", "invalid feed poll spec: "+err.Error())
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case fn := <-w.deliver:
			fn()
		case <-w.done:
			return
		}
	}
}

// Start begins scheduled polling. An initial refresh runs inline so mounted
// views have data before the first tick.
func (w *Watcher) Start(ctx context.Context) {
	w.RefreshAll(ctx)
	w.cron.Start()
}

// Stop halts polling and the delivery loop. Queued deliveries are dropped.
func (w *Watcher) Stop() {
	w.cron.Stop()
	close(w.done)
}

// Watch subscribes to a path. The current snapshot, if one has loaded, is
// delivered asynchronously right away. The returned unsubscribe function is
// idempotent, and a handler never fires after its unsubscribe returns
// control to the delivery loop.
func (w *Watcher) Watch(path string, h Handler) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	if w.subs[path] == nil {
		w.subs[path] = make(map[int]Handler)
	}
	w.subs[path][id] = h
	current, haveCurrent := w.snaps[path]
	w.mu.Unlock()

	if haveCurrent && current.loaded {
		w.enqueue(path, id, current.raw)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs[path], id)
			w.mu.Unlock()
		})
	}
}

// enqueue schedules a delivery that re-checks the subscription on the loop,
// so an unsubscribe racing a pending snapshot wins.
func (w *Watcher) enqueue(path string, id int, raw json.RawMessage) {
	select {
	case w.deliver <- func() {
		w.mu.Lock()
		h, alive := w.subs[path][id]
		w.mu.Unlock()
		if alive {
			h(path, raw)
		}
	}:
	case <-w.done:
	}
}

// RefreshAll polls every watched path once. Called by the cron schedule and
// inline from Start; exported so admin bulk writes can force a refresh.
func (w *Watcher) RefreshAll(ctx context.Context) {
	w.mu.Lock()
	paths := make([]string, 0, len(w.subs))
	for path, handlers := range w.subs {
		if len(handlers) > 0 {
			paths = append(paths, path)
		}
	}
	w.mu.Unlock()

	for _, path := range paths {
		w.refresh(ctx, path)
	}
}

func (w *Watcher) refresh(ctx context.Context, path string) {
	raw, err := w.getter.GetRaw(ctx, path)
	if err != nil {
		ferr := errs.NewFeedError(path, err)
		w.log.Warn("feed refresh failed", "path", path, "error", ferr)
		if w.hook != nil {
			w.hook(path, false)
		}
		return
	}
	if w.hook != nil {
		w.hook(path, true)
	}

	sum := sha256.Sum256(raw)

	w.mu.Lock()
	prev, had := w.snaps[path]
	changed := !had || !prev.loaded || prev.sum != sum
	if changed {
		w.snaps[path] = snapshot{sum: sum, raw: raw, loaded: true}
	}
	var pending []int
	if changed {
		for id := range w.subs[path] {
			pending = append(pending, id)
		}
	}
	w.mu.Unlock()

	for _, id := range pending {
		w.enqueue(path, id, raw)
	}
}

// Snapshot returns the cached value for a path, falling through to a
// direct read when the watcher has not loaded it yet. Services read all
// feed-shaped data through this.
func (w *Watcher) Snapshot(ctx context.Context, path string) (json.RawMessage, error) {
	if raw := w.Current(path); raw != nil {
		return raw, nil
	}
	return w.getter.GetRaw(ctx, path)
}

// Current returns the last loaded snapshot for a path, or nil when the path
// has never loaded. Callers treat nil as an empty collection.
func (w *Watcher) Current(path string) json.RawMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.snaps[path]; ok && s.loaded {
		return s.raw
	}
	return nil
}
