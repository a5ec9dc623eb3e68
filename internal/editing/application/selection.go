package application

import (
	"fmt"
	"sort"

	editing "motor-editor/internal/editing/domain"
)

// SelectPoints replaces the selection. Every address must name an existing
// point; on error the selection is unchanged.
func (s *Session) SelectPoints(addrs []PointAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := make([]editing.PointRef, 0, len(addrs))
	for _, addr := range addrs {
		curve, err := s.curve(addr.CurveAddress)
		if err != nil {
			return err
		}
		if addr.Index < 0 || addr.Index >= len(curve.Points) {
			return fmt.Errorf("select point %d of %s: %w", addr.Index, curve.Name, ErrPointNotFound)
		}
		refs = append(refs, editing.PointRef{Curve: curve, Index: addr.Index})
	}
	s.selection.SetSelection(refs)
	return nil
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.ClearSelection()
}

// Selection returns the selected points ordered by address.
func (s *Session) Selection() []PointAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedAddresses()
}

func (s *Session) selectedAddresses() []PointAddress {
	refs := s.selection.CurrentSelection()
	addrs := make([]PointAddress, 0, len(refs))
	for _, ref := range refs {
		if addr, ok := s.addressOf(ref); ok {
			addrs = append(addrs, addr)
		}
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
	return addrs
}

// OnSelectionChanged registers fn for selection change notifications.
func (s *Session) OnSelectionChanged(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remove := s.selection.Subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		remove()
	}
}

// pruneSelection drops references to curves no longer in the document or
// to points past the end of their curve. Callers hold s.mu.
func (s *Session) pruneSelection() {
	refs := s.selection.CurrentSelection()
	if len(refs) == 0 {
		return
	}
	kept := refs[:0]
	for _, ref := range refs {
		if _, ok := s.addressOf(ref); ok {
			kept = append(kept, ref)
		}
	}
	if len(kept) == len(refs) {
		return
	}
	if len(kept) == 0 {
		s.selection.ClearSelection()
		return
	}
	s.selection.SetSelection(kept)
}
