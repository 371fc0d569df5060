// Package launcher classifies known applications against the open windows
// and opens them on click.
package launcher

import "StackWin/pkg/wm"

// Descriptor is a launchable application.
type Descriptor struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	// Label is shown on the button. Defaults to Title.
	Label string `toml:"label,omitempty"`
}

// Text returns the button label.
func (d Descriptor) Text() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Title
}

// Status is the state of an application's window.
type Status int

const (
	Closed Status = iota
	Minimized
	Active
	Inactive
)

func (s Status) String() string {
	switch s {
	case Minimized:
		return "minimized"
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "closed"
	}
}

// Indicator is the visual cue for a status.
type Indicator struct {
	// Border names the border color role: "closed", "active" or "inactive".
	Border string
	// Dot marks a minimized window.
	Dot bool
}

// Indicator returns the cue for s. Minimized windows keep the inactive
// border and add a dot.
func (s Status) Indicator() Indicator {
	switch s {
	case Active:
		return Indicator{Border: "active"}
	case Inactive:
		return Indicator{Border: "inactive"}
	case Minimized:
		return Indicator{Border: "inactive", Dot: true}
	default:
		return Indicator{Border: "closed"}
	}
}

// Classify returns the status of id among records.
func Classify(records []wm.Record, id string) Status {
	for _, r := range records {
		if r.ID != id {
			continue
		}
		switch {
		case r.IsMinimized:
			return Minimized
		case r.Active:
			return Active
		default:
			return Inactive
		}
	}
	return Closed
}

// Button is a descriptor with its current status.
type Button struct {
	Descriptor
	Status Status
}

// Buttons classifies every descriptor.
func Buttons(descs []Descriptor, records []wm.Record) []Button {
	out := make([]Button, len(descs))
	for i, d := range descs {
		out[i] = Button{Descriptor: d, Status: Classify(records, d.ID)}
	}
	return out
}

// Opener opens windows. *wm.Manager satisfies it.
type Opener interface {
	Open(id, title string)
}

// Click opens d. Open is idempotent, so an open window is just activated.
func Click(o Opener, d Descriptor) {
	o.Open(d.ID, d.Title)
}
