package game

import "github.com/samber/lo"

// History remembers the keys of the most recent boards a player has seen, oldest first.
// It is written once per played move and only read during search.
type History struct {
	capacity int
	keys     []string
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		panic("history capacity must be positive")
	}
	return &History{capacity: capacity, keys: make([]string, 0, capacity)}
}

// Add appends key, evicting the oldest entry once the history is full.
func (h *History) Add(key string) {
	if len(h.keys) == h.capacity {
		copy(h.keys, h.keys[1:])
		h.keys = h.keys[:len(h.keys)-1]
	}
	h.keys = append(h.keys, key)
}

// Count returns how many times key is remembered. A nil History remembers nothing.
func (h *History) Count(key string) int {
	if h == nil {
		return 0
	}
	return lo.Count(h.keys, key)
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

func (h *History) Capacity() int {
	return h.capacity
}

// Keys returns a copy of the remembered keys, oldest first.
func (h *History) Keys() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.keys...)
}
