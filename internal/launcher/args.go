package launcher

import "fmt"

// ArgList builds a command argument vector from an ordered sequence of
// flag/value pairs plus a trailing free-form list.
//
// Pairs are validated when added; the trailing list is appended verbatim so
// caller-supplied extras reach the child exactly as given, in their original
// relative order. Argv output is a pure function of the insertions, which is
// what makes the assembled command line deterministic.
type ArgList struct {
	pairs    []pair
	trailing []string
	flags    map[string]bool
}

type pair struct {
	flag  string
	value string
}

// NewArgList creates an empty argument list.
func NewArgList() *ArgList {
	return &ArgList{flags: make(map[string]bool)}
}

// AddPair appends a --flag value pair.
// Rejects empty flags, flags without the -- prefix, empty values, and
// duplicate flags.
func (l *ArgList) AddPair(flag, value string) error {
	if len(flag) <= 2 || flag[:2] != "--" {
		return &LaunchError{
			Code:    ErrCodeBadArgument,
			Message: fmt.Sprintf("flag %q must start with -- and name an option", flag),
		}
	}
	if value == "" {
		return &LaunchError{
			Code:    ErrCodeBadArgument,
			Message: fmt.Sprintf("value for flag %s must be non-empty", flag),
		}
	}
	if l.flags[flag] {
		return &LaunchError{
			Code:    ErrCodeBadArgument,
			Message: fmt.Sprintf("flag %s added twice", flag),
		}
	}
	l.flags[flag] = true
	l.pairs = append(l.pairs, pair{flag: flag, value: value})
	return nil
}

// AddTrailing appends free-form arguments verbatim.
// Trailing args always render after every pair, in insertion order.
func (l *ArgList) AddTrailing(args ...string) {
	l.trailing = append(l.trailing, args...)
}

// Argv returns the final argument vector: pairs in insertion order, each as
// two elements, followed by the trailing list.
func (l *ArgList) Argv() []string {
	argv := make([]string, 0, 2*len(l.pairs)+len(l.trailing))
	for _, p := range l.pairs {
		argv = append(argv, p.flag, p.value)
	}
	argv = append(argv, l.trailing...)
	return argv
}

// Len returns the number of elements Argv will produce.
func (l *ArgList) Len() int {
	return 2*len(l.pairs) + len(l.trailing)
}
