package scene

import (
	"fmt"
	"strings"
)

// Call is one callback a scene widget received. X and Y are local
// coordinates for pointer callbacks.
type Call struct {
	Widget string  `yaml:"widget" json:"widget"`
	Event  string  `yaml:"event" json:"event"`
	X      float32 `yaml:"x,omitempty" json:"x,omitempty"`
	Y      float32 `yaml:"y,omitempty" json:"y,omitempty"`
	Key    string  `yaml:"key,omitempty" json:"key,omitempty"`
}

// String formats the call as "event widget", e.g. "hit ok".
func (c Call) String() string {
	return c.Event + " " + c.Widget
}

type callLog struct {
	calls []Call
}

func (l *callLog) add(c Call) {
	l.calls = append(l.calls, c)
}

func (l *callLog) drain() []Call {
	calls := l.calls
	l.calls = nil
	return calls
}

// Summary joins the short forms of calls, for logs and test failures.
func Summary(calls []Call) string {
	parts := make([]string, len(calls))
	for i, c := range calls {
		parts[i] = c.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
