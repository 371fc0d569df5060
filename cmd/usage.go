package cmd

import (
	"StackWin/internal/version"
	"fmt"
	"slices"
	"strings"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag.
func PrintHelp(target string) {
	fmt.Print(GetUsage(target))
}

type usageEntry struct {
	names []string
	arg   string
	text  []string
}

var usageEntries = []usageEntry{
	{[]string{"-v", "--verbose"}, "", []string{"Log informational messages to the console."}},
	{[]string{"-x", "--debug"}, "", []string{"Log debug messages to the console."}},
	{[]string{"-h", "--help"}, "", []string{"Show this usage information."}},
	{[]string{"-V", "--version"}, "", []string{"Show the version and exit."}},
	{[]string{"-c", "--config"}, "<file>", []string{
		"Read settings from <file> instead of the default configuration file.",
	}},
	{[]string{"-n", "--namespace"}, "<name>", []string{
		"Store window state under <name>. Desktops with different namespaces",
		"keep separate windows.",
	}},
	{[]string{"--store"}, "<file|memory>", []string{
		"Choose where window state lives. 'memory' forgets everything on exit.",
	}},
	{[]string{"--codec"}, "<json|yaml>", []string{
		"Choose the encoding of stored window state.",
	}},
	{[]string{"-o", "--open"}, "<id>", []string{
		"Open the window <id> on start. May be given more than once.",
		"Ids of launcher apps use the launcher title.",
	}},
	{[]string{"-l", "--list"}, "", []string{"List the stored windows and exit."}},
	{[]string{"--dump"}, "", []string{"Print the stored window state and exit."}},
	{[]string{"-R", "--reset"}, "", []string{"Forget all stored windows and exit."}},
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag.
func GetUsage(target string) string {
	var sb strings.Builder

	if target == "" {
		fmt.Fprintf(&sb, "Usage: %s [<Flags>]\n", version.CommandName)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s [%s]\n", version.ApplicationName, version.Version)
		sb.WriteString("A desktop of stacked windows in the terminal. Windows remember where\n")
		sb.WriteString("they were and reopen there next time.\n")
		sb.WriteString("\n")
		sb.WriteString("Flags:\n")
		sb.WriteString("\n")
	}

	for _, e := range usageEntries {
		if target != "" && !slices.Contains(e.names, target) {
			continue
		}
		head := strings.Join(e.names, " ")
		if e.arg != "" {
			head += " " + e.arg
		}
		sb.WriteString(head + "\n")
		for _, line := range e.text {
			sb.WriteString("\t" + line + "\n")
		}
	}
	return sb.String()
}
