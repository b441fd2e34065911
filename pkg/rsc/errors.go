package rsc

import "errors"

// The following errors classify the faults the machine can raise. Some
// are terminal (they set the ERROR control bit and stop the FSM on the
// next CHECK); others are diagnostics only and leave the machine running
// with whatever state it already had. See CycleState and the execute*
// helpers for which is which.
var (
	// ErrNullAccess indicates that the MMU translated address 0.
	ErrNullAccess = errors.New("rsc: null pointer access")

	// ErrBusFault indicates that an address maps to no known region.
	ErrBusFault = errors.New("rsc: bus fault: address maps to no device")

	// ErrMisalignment indicates that an access straddles a 4-byte granule.
	ErrMisalignment = errors.New("rsc: misaligned memory access")

	// ErrInvalidRegister indicates a read or write to an undefined register.
	ErrInvalidRegister = errors.New("rsc: invalid register index")

	// ErrInvalidOpcode indicates an opcode undefined for its block, or a
	// reference to a reserved block.
	ErrInvalidOpcode = errors.New("rsc: invalid opcode")

	// ErrInvalidScheme indicates the decoder saw an unrecognised scheme.
	ErrInvalidScheme = errors.New("rsc: invalid coding scheme")

	// ErrInvalidSize indicates a device rejected an access size.
	ErrInvalidSize = errors.New("rsc: invalid access size")
)
