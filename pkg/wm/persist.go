package wm

import (
	"StackWin/pkg/kv"
	"errors"
	"fmt"
)

var errCorrupt = errors.New("corrupt window state")

func (m *Manager) save() {
	b, err := m.codec.Marshal(m.records)
	if err != nil {
		m.log.Error("encoding window state failed", "error", err)
		return
	}
	if err := m.store.Set(m.namespace, b); err != nil {
		m.log.Error("saving window state failed", "error", err)
	}
}

func (m *Manager) saveData() {
	b, err := m.codec.Marshal(m.data)
	if err != nil {
		m.log.Error("encoding window data failed", "error", err)
		return
	}
	if err := m.store.Set(m.dataKey, b); err != nil {
		m.log.Error("saving window data failed", "error", err)
	}
}

// discard removes both persisted keys.
func (m *Manager) discard() {
	for _, key := range []string{m.namespace, m.dataKey} {
		if err := m.store.Delete(key); err != nil {
			m.log.Error("removing persisted state failed", "key", key, "error", err)
		}
	}
}

// load rehydrates records and data. State that cannot be decoded, or that
// breaks the record-set invariants, is thrown away and the manager starts
// empty. Read failures leave the stored bytes alone.
func (m *Manager) load() {
	records, err := m.readRecords()
	var data map[string]any
	if err == nil {
		data, err = m.readData()
	}

	switch {
	case errors.Is(err, errCorrupt):
		m.log.Warn("discarding persisted window state", "error", err)
		m.discard()
		return
	case err != nil:
		m.log.Error("loading window state failed", "error", err)
		return
	}

	m.records = records
	m.data = data
	m.normalize()
}

func (m *Manager) readRecords() ([]Record, error) {
	b, err := m.store.Get(m.namespace)
	if kv.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := m.codec.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}

	ids := make(map[string]bool, len(records))
	zs := make(map[int]bool, len(records))
	for _, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: record without id", errCorrupt)
		}
		if ids[r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", errCorrupt, r.ID)
		}
		if zs[r.ZIndex] {
			return nil, fmt.Errorf("%w: duplicate z-index %d", errCorrupt, r.ZIndex)
		}
		ids[r.ID] = true
		zs[r.ZIndex] = true
	}
	return records, nil
}

func (m *Manager) readData() (map[string]any, error) {
	data := make(map[string]any)
	b, err := m.store.Get(m.dataKey)
	if kv.IsNotFound(err) {
		return data, nil
	}
	if err != nil {
		return nil, err
	}
	if err := m.codec.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if data == nil {
		data = make(map[string]any)
	}
	return data, nil
}

// normalize restores the invariants a stored record set may have lost:
// minimum sizes, a restore point for every window, and focus on the
// topmost visible window.
func (m *Manager) normalize() {
	for i := range m.records {
		r := &m.records[i]
		if r.Rect().IsZero() {
			r.setRect(m.limits.Initial(m.viewport, i))
		}
		r.setRect(m.limits.ClampSize(r.Rect()))
		if r.SavedGeometry == nil {
			r.setSaved(r.Rect())
		} else {
			r.setSaved(m.limits.ClampSize(*r.SavedGeometry))
		}
	}
	m.recomputeActive()
}
