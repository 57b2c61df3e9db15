package overlay

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Manager owns the overlays of one document. It is safe for concurrent
// use; the renderer takes one snapshot per frame through Query.
type Manager struct {
	mu sync.RWMutex

	// overlays contains all registered overlays, keyed by ID.
	overlays map[string]Overlay

	// order records insertion order so equal priorities stay stable.
	order map[string]uint64
	seq   uint64

	// sortedIDs contains overlay IDs sorted by priority.
	sortedIDs []string
	needsSort bool
}

// NewManager creates an empty overlay manager.
func NewManager() *Manager {
	return &Manager{
		overlays: make(map[string]Overlay),
		order:    make(map[string]uint64),
	}
}

// Add registers an overlay and returns its ID. An empty ID is replaced by
// a generated one; adding an existing ID replaces that overlay.
func (m *Manager) Add(o Overlay) string {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.overlays[o.ID]; !exists {
		m.sortedIDs = append(m.sortedIDs, o.ID)
		m.seq++
		m.order[o.ID] = m.seq
	}
	m.overlays[o.ID] = o
	m.needsSort = true
	return o.ID
}

// Remove removes an overlay by ID.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(id)
}

func (m *Manager) removeLocked(id string) bool {
	if _, ok := m.overlays[id]; !ok {
		return false
	}
	delete(m.overlays, id)
	delete(m.order, id)
	for i, sid := range m.sortedIDs {
		if sid == id {
			m.sortedIDs = append(m.sortedIDs[:i], m.sortedIDs[i+1:]...)
			break
		}
	}
	return true
}

// Get returns an overlay by ID.
func (m *Manager) Get(id string) (Overlay, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.overlays[id]
	return o, ok
}

// Clear removes all overlays.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlays = make(map[string]Overlay)
	m.order = make(map[string]uint64)
	m.sortedIDs = nil
	m.needsSort = false
}

// ClearNamespace removes every overlay in the namespace and returns how
// many were removed.
func (m *Manager) ClearNamespace(ns string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var doomed []string
	for id, o := range m.overlays {
		if o.Namespace == ns {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		m.removeLocked(id)
	}
	return len(doomed)
}

// Count returns the number of overlays.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.overlays)
}

// Query returns the overlays intersecting [start, end) in application
// order: ascending priority, then insertion order.
func (m *Manager) Query(start, end int) []Overlay {
	m.mu.Lock()
	m.ensureSorted()
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Overlay
	for _, id := range m.sortedIDs {
		o := m.overlays[id]
		if o.Overlaps(start, end) {
			result = append(result, o)
		}
	}
	return result
}

// ensureSorted ensures the sortedIDs list is sorted by priority.
func (m *Manager) ensureSorted() {
	if !m.needsSort {
		return
	}
	sort.SliceStable(m.sortedIDs, func(i, j int) bool {
		oi := m.overlays[m.sortedIDs[i]]
		oj := m.overlays[m.sortedIDs[j]]
		if oi.Priority != oj.Priority {
			return oi.Priority < oj.Priority
		}
		return m.order[oi.ID] < m.order[oj.ID]
	})
	m.needsSort = false
}

// At filters a query snapshot down to the overlays covering pos, keeping
// application order.
func At(overlays []Overlay, pos int) []Overlay {
	var out []Overlay
	for _, o := range overlays {
		if o.Contains(pos) {
			out = append(out, o)
		}
	}
	return out
}
