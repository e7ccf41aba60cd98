// Package native runs machine code as a function.
//
// This is the only package that executes generated code. A Buffer is an
// anonymous memory mapping that is writable while code is loaded into it
// and executable, never both, while it is called. Calls go through a small
// assembly trampoline that binds up to four 32-bit parameters to the
// EDI, ESI, R8D and R9D registers, clears EAX, EBX, ECX, EDX and XMM0
// through XMM3 before and after the call, and returns EAX and the low
// 32 bits of XMM0.
package native
