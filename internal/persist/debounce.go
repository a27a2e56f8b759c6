package persist

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"tileboard/pkg/geometry"
)

// DefaultFlushInterval throttles per-gesture writes. The final gesture-end
// flush is unconditional, so at worst one interval of intermediate motion is
// ever at risk.
const DefaultFlushInterval = 500 * time.Millisecond

// Debouncer coalesces rapid position updates into throttled store writes.
// The most recent rectangle per tile wins; intermediate values are dropped.
// Writes happen on a timer goroutine so the interaction loop never blocks on
// storage I/O; Flush is synchronous and is called at gesture end.
//
// Write failures are logged and reported through onError but never roll back
// in-memory visual state; the pending value is kept so the next flush
// retries it.
type Debouncer struct {
	store    Store
	interval time.Duration
	logger   *log.Logger
	onError  func(error)

	mu       sync.Mutex
	pending  map[string]geometry.Rect
	timer    *time.Timer // owned scheduled-task handle; nil when idle
	boardID  string
	viewport *geometry.Viewport
}

// NewDebouncer creates a debouncer writing through store. interval <= 0
// selects DefaultFlushInterval. onError may be nil.
func NewDebouncer(store Store, interval time.Duration, logger *log.Logger, onError func(error)) *Debouncer {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Debouncer{
		store:    store,
		interval: interval,
		logger:   logger,
		onError:  onError,
		pending:  make(map[string]geometry.Rect),
	}
}

// UpdatePosition buffers a tile rectangle. The first update after an idle
// period arms the flush timer; later updates within the interval just
// replace the buffered value.
func (d *Debouncer) UpdatePosition(tileID string, rect geometry.Rect) {
	d.mu.Lock()
	d.pending[tileID] = rect
	d.armLocked()
	d.mu.Unlock()
}

// UpdateViewport buffers the board viewport. Viewports are only written at
// flush time; intermediate pan/pinch states are cheap to lose.
func (d *Debouncer) UpdateViewport(boardID string, v geometry.Viewport) {
	d.mu.Lock()
	d.boardID = boardID
	d.viewport = &v
	d.mu.Unlock()
}

// armLocked starts the flush timer if it is not already running.
func (d *Debouncer) armLocked() {
	if d.timer != nil {
		return
	}
	d.timer = time.AfterFunc(d.interval, d.timerFlush)
}

func (d *Debouncer) timerFlush() {
	d.mu.Lock()
	d.timer = nil
	updates, boardID, viewport := d.takeLocked()
	d.mu.Unlock()

	d.write(updates, boardID, viewport)
}

// Flush writes all buffered state synchronously and cancels the pending
// timer. Called unconditionally on gesture end so no data is lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	updates, boardID, viewport := d.takeLocked()
	d.mu.Unlock()

	d.write(updates, boardID, viewport)
}

// Cancel drops all buffered state without writing, e.g. when a gesture is
// aborted.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[string]geometry.Rect)
	d.viewport = nil
	d.mu.Unlock()
}

func (d *Debouncer) takeLocked() ([]PositionUpdate, string, *geometry.Viewport) {
	var updates []PositionUpdate
	for id, rect := range d.pending {
		updates = append(updates, PositionUpdate{TileID: id, Rect: rect})
	}
	d.pending = make(map[string]geometry.Rect)
	viewport := d.viewport
	d.viewport = nil
	return updates, d.boardID, viewport
}

func (d *Debouncer) write(updates []PositionUpdate, boardID string, viewport *geometry.Viewport) {
	if len(updates) == 1 {
		if err := d.store.UpdatePosition(updates[0].TileID, updates[0].Rect); err != nil {
			d.writeFailed(updates, viewport, err)
			return
		}
	} else if len(updates) > 1 {
		if err := d.store.BatchUpdatePositions(updates); err != nil {
			d.writeFailed(updates, viewport, err)
			return
		}
	}

	if viewport != nil {
		if err := d.store.UpdateViewport(boardID, *viewport); err != nil {
			d.writeFailed(nil, viewport, err)
		}
	}
}

// writeFailed re-buffers the failed values so the next flush retries the
// latest state, then reports the error.
func (d *Debouncer) writeFailed(updates []PositionUpdate, viewport *geometry.Viewport, err error) {
	d.mu.Lock()
	for _, u := range updates {
		// A newer value buffered meanwhile wins over the failed one.
		if _, ok := d.pending[u.TileID]; !ok {
			d.pending[u.TileID] = u.Rect
		}
	}
	if viewport != nil && d.viewport == nil {
		d.viewport = viewport
	}
	d.mu.Unlock()

	d.logger.Warn("position write failed; will retry on next flush", "err", err)
	if d.onError != nil {
		d.onError(err)
	}
}
