package rsc

import "github.com/golang/glog"

// Coding schemes, selected by the 2-bit Scheme field.
const (
	SchemeR = uint8(iota) // register-register
	SchemeUI               // zero-extended 14-bit immediate
	SchemeSI               // sign-extended 14-bit immediate
	SchemeIB               // 19-bit long-branch immediate, Src1 unused
)

// Functional-unit blocks, selected by the 3-bit Block field.
const (
	BlockArith = uint8(iota)
	BlockMemory
	BlockBranch
	BlockReg // reserved: fault
	blockPlh4
	blockPlh5
	blockPlh6
	BlockControl
)

// Instruction is the parsed form of a 32-bit instruction word: the
// fields common to every scheme, plus the operand pair (Op1, Op2) that
// the scheme-specific payload decodes into.
type Instruction struct {
	Word   uint32
	Block  uint8
	Scheme uint8
	Opcode uint8
	Dst    uint8
	Src1   uint8
	Op1    uint32
	Op2    uint32
}

const imm14Mask = 0x3fff
const imm19Mask = 0x7ffff

// signExtend14 sign-extends the low 14 bits of n using bit 13 as the
// sign bit.
func signExtend14(n uint32) uint32 {
	const signBit = uint32(1) << 13
	if n&signBit != 0 {
		n |= ^uint32(imm14Mask)
	}
	return n
}

// decode parses word into an Instruction. Fields are pulled out with
// explicit shifts and masks rather than an overlaid struct view, so the
// IB scheme's reuse of what would otherwise be the Src1 bits can never
// leak into a stray field read.
//
// On an unrecognised scheme decode logs and returns ok=false, but still
// returns the common fields it already parsed: op1/op2 in the returned
// Instruction are left at their zero value, so the caller (Machine)
// must preserve whatever the previous cycle's operands were rather than
// clobber them - see the DECODE arm of Machine.CycleState for where that
// fidelity matters.
func decode(regs *RegisterFile, word uint32) (Instruction, bool) {
	ins := Instruction{
		Word:   word,
		Block:  uint8(word & 0x7),
		Scheme: uint8((word >> 3) & 0x3),
		Opcode: uint8((word >> 5) & 0x7),
		Dst:    uint8((word >> 8) & 0x1f),
		Src1:   uint8((word >> 13) & 0x1f),
	}

	switch ins.Scheme {
	case SchemeR:
		src2 := uint8((word >> 18) & 0x1f)
		ins.Op1, _ = regs.Read(ins.Src1)
		ins.Op2, _ = regs.Read(src2)
	case SchemeUI:
		ins.Op1, _ = regs.Read(ins.Src1)
		ins.Op2 = (word >> 18) & imm14Mask
	case SchemeSI:
		ins.Op1, _ = regs.Read(ins.Src1)
		ins.Op2 = signExtend14((word >> 18) & imm14Mask)
	case SchemeIB:
		ins.Op1 = 0
		ins.Op2 = (word >> 13) & imm19Mask
	default:
		glog.Warningf("rsc: %s: %d", ErrInvalidScheme, ins.Scheme)
		return ins, false
	}
	return ins, true
}
