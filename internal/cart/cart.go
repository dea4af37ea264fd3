// Package cart holds the authoritative in-memory cart for the active
// session and mirrors every mutation to the persistence surface under
// a fixed key, so a reload never loses a completed action.
package cart

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"optica-store/internal/catalog"
	"optica-store/internal/kv"
	"optica-store/internal/logger"
	"optica-store/internal/metrics"
)

// StorageKey is the persistence-surface key owned by the cart. No
// other component writes it.
const StorageKey = "cart"

type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	lines []Line
}

func NewStore(surface kv.Store) *Store {
	return &Store{kv: surface}
}

// Load restores a previously persisted snapshot. A missing or
// malformed snapshot means a cold start with an empty cart; Load
// never fails.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil

	raw, err := s.kv.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.L().Warn("cart snapshot unreadable, starting empty", zap.Error(err))
		}
		return
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logger.L().Warn("cart snapshot malformed, starting empty", zap.Error(err))
		return
	}
	s.lines = lines
}

// AddItem merges the product into the cart by identity key
// (product id, selected color): an existing line gains quantity 1, a
// new combination appends a line with a snapshot copy of the product.
func (s *Store) AddItem(p *catalog.Producto, selectedColor string) error {
	if p == nil {
		return ErrNilProduct
	}

	if len(p.Color) > 0 {
		if selectedColor == "" {
			return ErrColorRequired
		}
		if !p.Color.Contains(selectedColor) {
			return ErrUnknownColor
		}
	} else if selectedColor != "" {
		return ErrUnknownColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].matches(p.ID, selectedColor) {
			s.lines[i].Quantity++
			s.persistLocked()
			return nil
		}
	}

	snapshot := *p
	snapshot.Color = append(catalog.ColorList(nil), p.Color...)

	s.lines = append(s.lines, Line{
		Producto:      snapshot,
		SelectedColor: selectedColor,
		Quantity:      1,
	})
	s.persistLocked()
	return nil
}

// RemoveItem deletes the matching line. Removing an absent line is a
// no-op, so the call is idempotent.
func (s *Store) RemoveItem(productID int, selectedColor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID, selectedColor)
	s.persistLocked()
}

// UpdateQuantity replaces the quantity of an existing line. A quantity
// of zero or less deletes the line; an absent line stays absent.
func (s *Store) UpdateQuantity(productID int, selectedColor string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID, selectedColor)
		s.persistLocked()
		return
	}

	for i := range s.lines {
		if s.lines[i].matches(productID, selectedColor) {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.persistLocked()
}

// Clear empties the cart and writes an empty snapshot (the key is
// kept, not deleted).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persistLocked()
}

// Total sums captured price times quantity across all lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount sums quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Lines returns a copy of the current line list.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

func (s *Store) removeLocked(productID int, selectedColor string) {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if !l.matches(productID, selectedColor) {
			kept = append(kept, l)
		}
	}
	s.lines = kept
}

// persistLocked writes the full line list synchronously. A write
// failure leaves the in-memory state authoritative for the session;
// it is logged and counted, never returned to the caller.
func (s *Store) persistLocked() {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		metrics.CartPersistFailures.Inc()
		logger.L().Error("cart snapshot marshal failed", zap.Error(err))
		return
	}

	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		metrics.CartPersistFailures.Inc()
		logger.L().Error("cart snapshot write failed", zap.Error(err))
	}
}
