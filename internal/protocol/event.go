// Package protocol decodes the acme event log lines that drive a match.
// A line looks like
//
//	event M L 12 13 0 0 0 1 A '' ''
//
// which is the format printed by plan9port's acmeevent for window events.
// Decoding never fails loudly: a malformed line yields an invalid Event.
package protocol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Origin and type tags used for classification.
const (
	OriginMouse = "M"

	TypeExecute      = "x"
	TypeExecuteUpper = "X"
	TypeLook         = "l"
	TypeLookUpper    = "L"
)

// sentinel closes every line: the empty arg and loc fields.
const sentinel = " '' ''"

// Class says what the match engine should do with an event.
type Class int

const (
	ClassOther     Class = iota // parsed but not a click the game cares about
	ClassCommand                // mouse execute, passed through untouched
	ClassSelection              // mouse look, carries gameplay text
)

// String returns a short name for the class.
func (c Class) String() string {
	switch c {
	case ClassOther:
		return "other"
	case ClassCommand:
		return "command"
	case ClassSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// Event is one decoded notification. The zero value is an invalid event.
type Event struct {
	Valid  bool
	Origin string
	Type   string
	Q0     int // selection begin
	Q1     int // selection end
	Flags  [4]int
	Text   string
	Class  Class
}

var lineRE = regexp.MustCompile(
	`^event ([A-Za-z0-9]+) ([A-Za-z0-9]+) ([0-9]+) ([0-9]+) ([0-9]+) ([0-9]+) ([0-9]+) ([0-9]+) (.*)` +
		regexp.QuoteMeta(sentinel) + `$`)

// Decode parses a single raw line. Any mismatch returns Event{}.
func Decode(raw []byte) Event {
	line := strings.TrimSuffix(string(raw), "\n")
	line = strings.TrimSuffix(line, "\r")

	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return Event{}
	}

	var nums [6]int
	for i := range nums {
		n, err := strconv.Atoi(m[3+i])
		if err != nil {
			// only overflow gets here
			return Event{}
		}
		nums[i] = n
	}

	ev := Event{
		Valid:  true,
		Origin: m[1],
		Type:   m[2],
		Q0:     nums[0],
		Q1:     nums[1],
		Flags:  [4]int{nums[2], nums[3], nums[4], nums[5]},
		Text:   m[9],
	}
	ev.Class = Classify(ev.Origin, ev.Type)
	return ev
}

// Classify maps an (origin, type) pair to its Class.
func Classify(origin, typ string) Class {
	if origin != OriginMouse {
		return ClassOther
	}
	switch typ {
	case TypeExecute, TypeExecuteUpper:
		return ClassCommand
	case TypeLook, TypeLookUpper:
		return ClassSelection
	}
	return ClassOther
}

// IsCommand reports whether the event is a system-command click.
func (e Event) IsCommand() bool {
	return e.Valid && e.Class == ClassCommand
}

// IsSelection reports whether the event is a selection click.
func (e Event) IsSelection() bool {
	return e.Valid && e.Class == ClassSelection
}

// Passthrough re-serializes the event the way acme expects it written
// back to the window's event file: origin and type joined, then the range.
func (e Event) Passthrough() string {
	return fmt.Sprintf("%s%s%d %d", e.Origin, e.Type, e.Q0, e.Q1)
}

// Encode formats e as an event line without the trailing newline.
// Text is quoted rc-style when it needs to be, as acmeevent does.
func Encode(e Event) string {
	return fmt.Sprintf("event %s %s %d %d %d %d %d %d %s%s",
		e.Origin, e.Type, e.Q0, e.Q1,
		e.Flags[0], e.Flags[1], e.Flags[2], e.Flags[3],
		Quote(e.Text), sentinel)
}

// Quote returns s quoted for rc. Plain words are returned as is.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'#;&|^$=`{}()<>[]*?") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Selection builds the event a mouse look click on text produces.
// Front-ends without a real acme window use it to synthesize input.
func Selection(text string) Event {
	return Event{
		Valid:  true,
		Origin: OriginMouse,
		Type:   TypeLookUpper,
		Text:   text,
		Class:  ClassSelection,
	}
}
