package rsc

import (
	"fmt"
	"strings"
)

// Register indices. The machine addresses registers through a single
// 8-bit index space: 0..31 are general-purpose words, 32..34 are the
// status flags, and 35..37 are the control flags.
const (
	RegRZ = uint8(iota) // always reads zero, writes discarded
	RegPC
	RegFP
	RegLR
	RegCR
	RegR1
	RegR2
	RegR3
	RegR4
	RegR5
	RegR6
	RegR7
	RegR8
	RegR9
	RegR10
	RegR11
	RegR12
	RegR13
	RegR14
	RegR15
	RegR16
	RegR17
	RegR18
	RegR19
	RegR20
	RegR21
	RegR22
	RegR23
	RegR24
	RegR25
	RegR26
	RegR27

	NumGPRegisters // = 32

	RegZF = uint8(iota - 1) // zero flag (32, directly after the GP registers)
	RegNF                   // negative flag
	RegIF                   // interrupt flag (reserved, never written by the core)

	RegHALT
	RegBREAK
	RegERROR
)

// regNames gives the canonical names of the general-purpose registers,
// in index order, for RegisterFile.Dump.
var regNames = [NumGPRegisters]string{
	"rz", "pc", "fp", "lr", "cr", "r1", "r2", "r3", "r4", "r5", "r6",
	"r7", "r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15", "r16", "r17",
	"r18", "r19", "r20", "r21", "r22", "r23", "r24", "r25", "r26", "r27",
}

// RegisterFile holds the 32 general-purpose words plus the status and
// control flags of a machine instance.
type RegisterFile struct {
	gp     [NumGPRegisters]uint32
	zf, nf bool
	ifl    bool
	halt   bool
	brk    bool
	errf   bool
}

// Reset zeroes every register, including PC, and clears every flag. The
// caller is expected to set PC afterwards (Machine.Reset does this).
func (r *RegisterFile) Reset() {
	*r = RegisterFile{}
}

// Read returns the 32-bit value of register idx. Status and control
// flags are returned as 0 or 1. Read of an undefined index is a fault.
func (r *RegisterFile) Read(idx uint8) (uint32, error) {
	switch {
	case idx < NumGPRegisters:
		return r.gp[idx], nil
	case idx == RegZF:
		return bit(r.zf), nil
	case idx == RegNF:
		return bit(r.nf), nil
	case idx == RegIF:
		return bit(r.ifl), nil
	case idx == RegHALT:
		return bit(r.halt), nil
	case idx == RegBREAK:
		return bit(r.brk), nil
	case idx == RegERROR:
		return bit(r.errf), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidRegister, idx)
	}
}

// Write stores value in register idx. Writes to RZ (idx 0) are silently
// discarded: decoded instructions with dst==0 are a canonical way to
// compute a result and throw it away. Status and control registers take
// only the low bit. Write of an undefined index is a fault.
func (r *RegisterFile) Write(idx uint8, value uint32) error {
	switch {
	case idx == RegRZ:
		return nil
	case idx < NumGPRegisters:
		r.gp[idx] = value
		return nil
	case idx == RegZF:
		r.zf = value&1 != 0
		return nil
	case idx == RegNF:
		r.nf = value&1 != 0
		return nil
	case idx == RegIF:
		r.ifl = value&1 != 0
		return nil
	case idx == RegHALT:
		r.halt = value&1 != 0
		return nil
	case idx == RegBREAK:
		r.brk = value&1 != 0
		return nil
	case idx == RegERROR:
		r.errf = value&1 != 0
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRegister, idx)
	}
}

// Halted reports whether the HALT control bit is set.
func (r *RegisterFile) Halted() bool { return r.halt }

// Broken reports whether the BREAK control bit is set.
func (r *RegisterFile) Broken() bool { return r.brk }

// Errored reports whether the ERROR control bit is set.
func (r *RegisterFile) Errored() bool { return r.errf }

// Zero reports the ZF status flag.
func (r *RegisterFile) Zero() bool { return r.zf }

// Negative reports the NF status flag.
func (r *RegisterFile) Negative() bool { return r.nf }

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Dump renders a human-readable snapshot of all general-purpose
// registers, one line per register with both unsigned and signed
// decimal, matching the diagnostic format printed on ERROR.
func (r *RegisterFile) Dump() string {
	var b strings.Builder
	for i, name := range regNames {
		v := r.gp[i]
		fmt.Fprintf(&b, "%s: %d %d\n", name, v, int32(v))
	}
	return b.String()
}
