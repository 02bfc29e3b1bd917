package domain

import "iter"

// DefaultHistoryCapacity is the number of transactions kept per account.
const DefaultHistoryCapacity = 10

// History is a fixed capacity ring of the most recent transactions.
// When full, pushing evicts the oldest entry. It is not safe for concurrent
// use; Account callers synchronize access.
type History struct {
	buf  []Transaction
	head int // index of the newest entry
	size int
}

// NewHistory creates an empty History. Capacity below one is raised to one.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]Transaction, capacity), head: -1}
}

// Push inserts tx as the newest entry.
func (h *History) Push(tx Transaction) {
	h.head = (h.head + 1) % len(h.buf)
	h.buf[h.head] = tx
	if h.size < len(h.buf) {
		h.size++
	}
}

// All yields entries newest first.
func (h *History) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for i := range h.size {
			idx := (h.head - i + len(h.buf)) % len(h.buf)
			if !yield(h.buf[idx]) {
				return
			}
		}
	}
}

// Snapshot copies the entries newest first.
func (h *History) Snapshot() []Transaction {
	out := make([]Transaction, 0, h.size)
	for tx := range h.All() {
		out = append(out, tx)
	}
	return out
}

// Len returns the number of stored entries.
func (h *History) Len() int { return h.size }

// Cap returns the fixed capacity.
func (h *History) Cap() int { return len(h.buf) }
