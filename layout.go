package main

import (
	"fmt"
	"sort"
)

// Column widths are terminal cells, not pixels. Below this a column is
// unreadable and effectively lost.
const minColumnWidth = 4

// columnDescriptor is one persisted layout entry: which column, where, how
// wide. Position integers are unique across the visible set.
type columnDescriptor struct {
	ID       string
	Position int
	Width    int
}

// columnLayout is the single source of truth for column order and widths.
// The grid derives its rendered column list from it every refresh.
type columnLayout struct {
	descriptors []columnDescriptor
}

func defaultColumnLayout(mode viewMode) *columnLayout {
	specs := columnsForViewMode(mode)
	descriptors := make([]columnDescriptor, 0, len(specs))
	for i, spec := range specs {
		descriptors = append(descriptors, columnDescriptor{ID: spec.id, Position: i, Width: spec.width})
	}
	return &columnLayout{descriptors: descriptors}
}

// newColumnLayout builds a layout from persisted descriptors, silently
// dropping any whose id is no longer in the registry, and renumbering
// positions 0..n-1 in the persisted order.
func newColumnLayout(persisted []columnDescriptor) *columnLayout {
	kept := make([]columnDescriptor, 0, len(persisted))
	for _, d := range persisted {
		if _, ok := columnSpecByID(d.ID); !ok {
			continue
		}
		if d.Width < minColumnWidth {
			d.Width = minColumnWidth
		}
		kept = append(kept, d)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Position < kept[j].Position })
	for i := range kept {
		kept[i].Position = i
	}
	return &columnLayout{descriptors: kept}
}

// setColumnSize updates the width of one descriptor, clamped so the column
// cannot collapse to nothing. Unknown ids are a no-op.
func (l *columnLayout) setColumnSize(id string, width int) {
	if width < minColumnWidth {
		width = minColumnWidth
	}
	for i := range l.descriptors {
		if l.descriptors[i].ID == id {
			l.descriptors[i].Width = width
			return
		}
	}
}

// reorderColumns applies a permutation of the currently visible column ids,
// reassigning positions 0..n-1 in the given sequence. A sequence that is not
// an exact permutation, or that names an id missing from the registry, is
// rejected whole: no partial application.
func (l *columnLayout) reorderColumns(ids []string) error {
	if len(ids) != len(l.descriptors) {
		return fmt.Errorf("reorder: got %d ids, layout has %d columns", len(ids), len(l.descriptors))
	}
	current := make(map[string]columnDescriptor, len(l.descriptors))
	for _, d := range l.descriptors {
		current[d.ID] = d
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := columnSpecByID(id); !ok {
			return fmt.Errorf("reorder: unknown column %q", id)
		}
		if _, ok := current[id]; !ok {
			return fmt.Errorf("reorder: column %q is not in the visible set", id)
		}
		if seen[id] {
			return fmt.Errorf("reorder: column %q repeated", id)
		}
		seen[id] = true
	}
	reordered := make([]columnDescriptor, 0, len(ids))
	for i, id := range ids {
		d := current[id]
		d.Position = i
		reordered = append(reordered, d)
	}
	l.descriptors = reordered
	return nil
}

// moveColumn shifts one column a single step left or right; a convenience
// wrapper that still goes through the full-permutation path.
func (l *columnLayout) moveColumn(id string, delta int) error {
	ids := l.orderedIDs()
	from := -1
	for i, existing := range ids {
		if existing == id {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("move: unknown column %q", id)
	}
	to := from + delta
	if to < 0 || to >= len(ids) {
		return nil
	}
	ids[from], ids[to] = ids[to], ids[from]
	return l.reorderColumns(ids)
}

// ordered returns a position-sorted copy; callers never see internal state.
func (l *columnLayout) ordered() []columnDescriptor {
	out := append([]columnDescriptor(nil), l.descriptors...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (l *columnLayout) orderedIDs() []string {
	ordered := l.ordered()
	ids := make([]string, len(ordered))
	for i, d := range ordered {
		ids[i] = d.ID
	}
	return ids
}

func (l *columnLayout) width(id string) int {
	for _, d := range l.descriptors {
		if d.ID == id {
			return d.Width
		}
	}
	return 0
}

func (l *columnLayout) isEmpty() bool {
	return len(l.descriptors) == 0
}
