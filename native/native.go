package native

// MAX_ARGS is the number of parameter registers bound by Call.
const MAX_ARGS = 4

// Args are the parameter words of a call.
type Args [MAX_ARGS]uint32

// Result is the register state returned by a call.
type Result struct {
	AX uint32 // Integer result
	X0 uint32 // Float result bits
}
