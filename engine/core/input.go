// Package core defines the abstract input surface shared between the
// platform layer and the UI. The platform translates its native events into
// these bitmasks; the UI never sees platform types.
package core

// Inputs is a bitmask over an abstract set of mouse buttons and keys.
// Pressed and released sets are accumulated separately and cleared at the
// end of every frame.
type Inputs uint32

const (
	MouseLeft Inputs = 1 << iota
	MouseRight
	MouseMiddle
	Mouse4
	Mouse5
	Mouse6
	Mouse7

	KeyTab
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyEscape
)

const (
	InputsNone Inputs = 0
	InputsAll  Inputs = MouseLeft | MouseRight | MouseMiddle | Mouse4 | Mouse5 |
		Mouse6 | Mouse7 | KeyTab | KeyLeftArrow | KeyRightArrow | KeyUpArrow |
		KeyDownArrow | KeyPageUp | KeyPageDown | KeyHome | KeyEnd | KeyInsert |
		KeyDelete | KeyBackspace | KeyEnter | KeyEscape
)

// Intersects reports whether the two masks share any bit.
func (in Inputs) Intersects(other Inputs) bool { return in&other != 0 }

// Truncate drops bits outside the defined input set.
func (in Inputs) Truncate() Inputs { return in & InputsAll }
