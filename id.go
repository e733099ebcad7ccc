package surface

import (
	"hash/fnv"
	"strconv"
)

// ID identifies a widget. The engine keys all of its per-widget state
// (pointer tracks, render queues, focus) by ID and never holds ownership
// of the widget itself.
type ID uint64

// NewID derives a stable ID from a parent ID and a label.
// The same parent and label always produce the same ID.
func NewID(parent ID, label string) ID {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatUint(uint64(parent), 16)))
	h.Write([]byte{'/'})
	h.Write([]byte(label))
	return ID(h.Sum64())
}

// String formats the ID as hex, which is how it shows up in logs.
func (id ID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 16)
}
