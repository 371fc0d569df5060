package apps

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const instanceSep = "__"

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*(__[a-z0-9]+)?$`)

// IsIDValid checks a window id: a lower-case base name with an optional
// instance suffix.
func IsIDValid(id string) bool {
	return idPattern.MatchString(id)
}

// BaseID strips the instance suffix from a window id.
func BaseID(id string) string {
	base, _, _ := strings.Cut(id, instanceSep)
	return base
}

// InstanceName returns the instance suffix of a window id, if any.
func InstanceName(id string) string {
	_, instance, _ := strings.Cut(id, instanceSep)
	return instance
}

// NewInstanceID returns a fresh window id for another window of base.
func NewInstanceID(base string) string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base + instanceSep + short
}

// InstanceTitle decorates title with the instance suffix of id.
func InstanceTitle(title, id string) string {
	if instance := InstanceName(id); instance != "" {
		return title + " (" + instance + ")"
	}
	return title
}
