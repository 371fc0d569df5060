package apps

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const textKey = "text"

// Notes is a plain text pad. Its data is {"text": "..."}.
type Notes struct{}

func (Notes) Render(f Frame) string {
	text := TextOf(f.Data)
	if text == "" {
		return lastLines("Type to take notes.", f.Height)
	}
	return lastLines(ansi.Wrap(text+"▏", max(f.Width, 1), ""), f.Height)
}

func (Notes) HandleKey(data any, k Key) (any, bool) {
	text := TextOf(data)
	switch k.Name {
	case "enter":
		text += "\n"
	case "backspace":
		if text == "" {
			return data, false
		}
		r := []rune(text)
		text = string(r[:len(r)-1])
	default:
		if k.Text == "" {
			return data, false
		}
		text += k.Text
	}
	return map[string]any{textKey: text}, true
}

// Clock shows the current time.
type Clock struct{}

func (Clock) Render(f Frame) string {
	lines := []string{
		f.Now.Format("15:04:05"),
		f.Now.Format("Monday, 02 January 2006"),
	}
	return center(lines, f.Width, f.Height)
}

func (Clock) Ticks() bool { return true }

// AboutInfo is shown by the about window.
type AboutInfo struct {
	Version   string
	Namespace string
	StoreDir  string
	Codec     string
}

// About describes the running instance.
type About struct {
	Info AboutInfo
}

func (a About) Render(f Frame) string {
	lines := []string{
		a.Info.Version,
		"",
		fmt.Sprintf("namespace  %s", a.Info.Namespace),
		fmt.Sprintf("codec      %s", a.Info.Codec),
	}
	if a.Info.StoreDir != "" {
		lines = append(lines, fmt.Sprintf("store      %s", a.Info.StoreDir))
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, max(f.Width, 0), "…")
	}
	return strings.Join(lines, "\n")
}

// lastLines keeps the bottom n lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// center places lines in the middle of a width x height box.
func center(lines []string, width, height int) string {
	out := make([]string, 0, height)
	top := max((height-len(lines))/2, 0)
	for range top {
		out = append(out, "")
	}
	for _, l := range lines {
		pad := max((width-ansi.StringWidth(l))/2, 0)
		out = append(out, strings.Repeat(" ", pad)+l)
	}
	return strings.Join(out, "\n")
}
