package cmd

import (
	"StackWin/internal/apps"
	"StackWin/internal/constants"
	"StackWin/internal/version"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseError wraps argument parsing errors with the command line and a
// caret under the failing argument.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The flag being processed (e.g. "--open")
}

func (e *ParseError) Error() string {
	indent := "   "

	cmdLineParts := []string{version.CommandName}
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		cmdLineParts = append(cmdLineParts, e.Args[i])
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// Indent + ' + command + space + previous args
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "^"

	// Message might contain %c (command) or %o (option)
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	replacer := strings.NewReplacer(
		"%c", "'"+e.FailingCommand+"'",
		"%o", "'"+failingOpt+"'",
	)
	formattedMsg := replacer.Replace(e.Message)

	var b strings.Builder
	fmt.Fprintf(&b, "Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		fmt.Fprintf(&b, "\n%sUsage is:\n", indent)
		for _, line := range strings.Split(strings.TrimRight(GetUsage(e.FailingCommand), "\n"), "\n") {
			fmt.Fprintf(&b, "%s%s\n", indent, line)
		}
	} else {
		fmt.Fprintf(&b, "\n%sRun '%s --help' for usage.\n", indent, version.CommandName)
	}
	return b.String()
}

// expandShorts splits combined short flags (e.g. -xl -> -x -l).
func expandShorts(args []string) []string {
	var expanded []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			for _, c := range arg[1:] {
				expanded = append(expanded, fmt.Sprintf("-%c", c))
			}
			continue
		}
		expanded = append(expanded, arg)
	}
	return expanded
}

// lookup finds the flag named by arg, which may carry an =value suffix.
func lookup(fs *pflag.FlagSet, arg string) (*pflag.Flag, bool) {
	name, _, hasValue := strings.Cut(arg, "=")
	trimmed := strings.TrimLeft(name, "-")
	if strings.HasPrefix(name, "--") {
		return fs.Lookup(trimmed), hasValue
	}
	if len(trimmed) == 1 {
		return fs.ShorthandLookup(trimmed), hasValue
	}
	return nil, hasValue
}

// Parse parses the command line. Every argument is checked up front so
// errors can point at the argument that caused them.
func Parse(args []string) (Options, error) {
	var opts Options
	fs := newFlagSet(&opts)
	expanded := expandShorts(args)

	// values records where each flag value sits, for error reporting.
	type value struct {
		flag  string
		index int
		text  string
	}
	var values []value

	for i := 0; i < len(expanded); i++ {
		arg := expanded[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return opts, &ParseError{Args: expanded, Index: i, Message: "Invalid option %o"}
		}

		flag, inline := lookup(fs, arg)
		if flag == nil {
			return opts, &ParseError{Args: expanded, Index: i, Message: "Invalid option %o"}
		}
		command := "--" + flag.Name

		if flag.Value.Type() == "bool" {
			if inline {
				return opts, &ParseError{Args: expanded, Index: i, Message: "%c does not take a value", FailingCommand: command}
			}
			continue
		}
		if inline {
			_, text, _ := strings.Cut(arg, "=")
			values = append(values, value{flag: command, index: i, text: text})
			continue
		}
		if i+1 >= len(expanded) {
			return opts, &ParseError{Args: expanded, Index: i, Message: "%c requires an argument", FailingCommand: command}
		}
		i++
		values = append(values, value{flag: command, index: i, text: expanded[i]})
	}

	if err := fs.Parse(expanded); err != nil {
		return opts, &ParseError{Args: expanded, Index: len(expanded) - 1, Message: err.Error()}
	}

	for _, v := range values {
		if msg := checkValue(v.flag, v.text); msg != "" {
			return opts, &ParseError{Args: expanded, Index: v.index, Message: msg, FailingCommand: v.flag}
		}
	}
	return opts, nil
}

// checkValue validates the value given to flag and returns a message
// describing the problem, if any.
func checkValue(flag, text string) string {
	switch flag {
	case "--store":
		if text != constants.StoreBackendFile && text != constants.StoreBackendMem {
			return "Invalid store %o for %c, expected 'file' or 'memory'"
		}
	case "--codec":
		switch strings.ToLower(text) {
		case "json", "yaml", "yml":
		default:
			return "Invalid codec %o for %c, expected 'json' or 'yaml'"
		}
	case "--open":
		if !apps.IsIDValid(text) {
			return "Invalid window id %o for %c"
		}
	case "--namespace", "--config":
		if text == "" {
			return "%c requires a non-empty argument"
		}
	}
	return ""
}
