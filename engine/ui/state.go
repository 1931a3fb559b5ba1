package ui

import "unsafe"

// StateAs reinterprets a control's state buffer as a concrete widget
// state type. T must be no larger than StateSize and must not contain
// pointers: the buffer is plain bytes, moves when the collector relocates
// the control, and is zeroed rather than constructed when the control is
// first created. The returned pointer is invalidated by the next Push.
func StateAs[T any](c Ctrl) *T {
	if unsafe.Sizeof(*new(T)) > StateSize {
		panic("ui: state type exceeds the per-control state buffer")
	}
	return (*T)(unsafe.Pointer(c.State()))
}
