// Package tray lists minimized windows and restores them on click.
package tray

import "StackWin/pkg/wm"

// Entry is one minimized window.
type Entry struct {
	ID    string
	Title string
}

// Activator brings a window back. *wm.Manager satisfies it.
type Activator interface {
	Activate(id string)
}

// Tray is a read-only projection of the record set.
type Tray struct {
	entries []Entry
}

// New builds the tray for records, keeping their creation order.
func New(records []wm.Record) Tray {
	var t Tray
	for _, r := range records {
		if r.IsMinimized {
			t.entries = append(t.entries, Entry{ID: r.ID, Title: r.Title})
		}
	}
	return t
}

// Entries returns the minimized windows.
func (t Tray) Entries() []Entry {
	return t.entries
}

// Len returns the number of entries.
func (t Tray) Len() int {
	return len(t.entries)
}

// Empty reports whether nothing is minimized.
func (t Tray) Empty() bool {
	return len(t.entries) == 0
}

// Last returns the most recently listed entry.
func (t Tray) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Click restores id if it is in the tray.
func (t Tray) Click(a Activator, id string) bool {
	for _, e := range t.entries {
		if e.ID == id {
			a.Activate(id)
			return true
		}
	}
	return false
}
