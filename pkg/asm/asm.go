// Package asm assembles and disassembles single instruction words for
// the rsc machine. See the documentation of package rsc for the
// instruction format and instruction set this implements.
package asm

import (
	"fmt"

	"rscsim/pkg/rsc"
)

// Fields is the set of bit fields that make up one instruction, before
// they are packed into (or after they are unpacked from) a 32-bit word.
// Which of Src2, Imm14, and Imm19 apply depends on Scheme.
type Fields struct {
	Block  uint8
	Scheme uint8
	Opcode uint8
	Dst    uint8
	Src1   uint8
	Src2   uint8
	Imm14  uint32
	Imm19  uint32
}

const mask5 = 0x1f
const mask14 = 0x3fff
const mask19 = 0x7ffff

// Encode packs f into a 32-bit instruction word. It does not validate
// that Opcode is defined for Block, or that a field exceeds its width;
// those are decode-time/execute-time concerns, same as the machine
// itself only ever inspects the bits it cares about.
func Encode(f Fields) uint32 {
	common := uint32(f.Block&0x7) |
		uint32(f.Scheme&0x3)<<3 |
		uint32(f.Opcode&0x7)<<5 |
		uint32(f.Dst&mask5)<<8

	switch f.Scheme {
	case rsc.SchemeR:
		return common | uint32(f.Src1&mask5)<<13 | uint32(f.Src2&mask5)<<18
	case rsc.SchemeUI, rsc.SchemeSI:
		return common | uint32(f.Src1&mask5)<<13 | (f.Imm14&mask14)<<18
	case rsc.SchemeIB:
		return common | ((f.Imm19 & mask19) << 13)
	default:
		return common
	}
}

// EncodeR encodes a register-register instruction.
func EncodeR(block, opcode, dst, src1, src2 uint8) uint32 {
	return Encode(Fields{Block: block, Scheme: rsc.SchemeR, Opcode: opcode, Dst: dst, Src1: src1, Src2: src2})
}

// EncodeUI encodes an instruction with a zero-extended 14-bit immediate.
func EncodeUI(block, opcode, dst, src1 uint8, imm14 uint32) uint32 {
	return Encode(Fields{Block: block, Scheme: rsc.SchemeUI, Opcode: opcode, Dst: dst, Src1: src1, Imm14: imm14})
}

// EncodeSI encodes an instruction with a signed 14-bit immediate. imm is
// the value to encode, not the already-packed field: negative values
// are truncated to their low 14 bits the way the decoder will later
// sign-extend them back out.
func EncodeSI(block, opcode, dst, src1 uint8, imm int32) uint32 {
	return Encode(Fields{Block: block, Scheme: rsc.SchemeSI, Opcode: opcode, Dst: dst, Src1: src1, Imm14: uint32(imm) & mask14})
}

// EncodeIB encodes a long-branch instruction; Src1 is not used by this
// scheme.
func EncodeIB(block, opcode, dst uint8, imm19 uint32) uint32 {
	return Encode(Fields{Block: block, Scheme: rsc.SchemeIB, Opcode: opcode, Dst: dst, Imm19: imm19})
}

// Decode unpacks a 32-bit instruction word into its raw fields, using
// the same explicit shift/mask extraction as the machine's own decoder
// (package rsc keeps its copy private because it also needs live
// register reads; this one is pure and safe to use for disassembly).
func Decode(word uint32) Fields {
	f := Fields{
		Block:  uint8(word & 0x7),
		Scheme: uint8((word >> 3) & 0x3),
		Opcode: uint8((word >> 5) & 0x7),
		Dst:    uint8((word >> 8) & mask5),
		Src1:   uint8((word >> 13) & mask5),
	}
	switch f.Scheme {
	case rsc.SchemeR:
		f.Src2 = uint8((word >> 18) & mask5)
	case rsc.SchemeUI, rsc.SchemeSI:
		f.Imm14 = (word >> 18) & mask14
	case rsc.SchemeIB:
		f.Imm19 = (word >> 13) & mask19
	}
	return f
}

var blockNames = map[uint8]string{
	rsc.BlockArith:   "arith",
	rsc.BlockMemory:  "mem",
	rsc.BlockBranch:  "branch",
	rsc.BlockReg:     "reg",
	rsc.BlockControl: "ctrl",
}

var arithNames = map[uint8]string{
	rsc.ArithAdd: "add", rsc.ArithSub: "sub", rsc.ArithShl: "shl", rsc.ArithShr: "shr",
	rsc.ArithAnd: "and", rsc.ArithOr: "or", rsc.ArithNot: "not", rsc.ArithXor: "xor",
}

var memNames = map[uint8]string{
	rsc.MemLB: "lb", rsc.MemLHW: "lhw", rsc.MemLW: "lw",
	rsc.MemSB: "sb", rsc.MemSHW: "shw", rsc.MemSW: "sw",
}

var branchNames = map[uint8]string{
	rsc.BranchBR: "br", rsc.BranchBEQ: "beq", rsc.BranchBLT: "blt",
	rsc.BranchBLE: "ble", rsc.BranchBGT: "bgt", rsc.BranchBGE: "bge", rsc.BranchCMP: "cmp",
}

var ctrlNames = map[uint8]string{
	rsc.CtrlBRK: "brk", rsc.CtrlHLT: "hlt",
}

// regNames mirrors package rsc's own register name table. Kept as a
// separate copy here (rather than exported from rsc) because this
// package already keeps its own copy of the decode logic for the same
// reason: disassembly is a pure, dependency-free concern.
var regNames = [...]string{
	"rz", "pc", "fp", "lr", "cr", "r1", "r2", "r3", "r4", "r5", "r6",
	"r7", "r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15", "r16", "r17",
	"r18", "r19", "r20", "r21", "r22", "r23", "r24", "r25", "r26", "r27",
}

func regName(idx uint8) string {
	if int(idx) < len(regNames) {
		return regNames[idx]
	}
	return fmt.Sprintf("r%d", idx)
}

// Disassemble renders word as a short, human-readable mnemonic line. It
// never fails: an opcode or block it does not recognise is rendered
// numerically instead of panicking, since this is a diagnostic aid, not
// part of the execution path.
func Disassemble(word uint32) string {
	f := Decode(word)
	switch f.Block {
	case rsc.BlockArith:
		name, ok := arithNames[f.Opcode]
		if !ok {
			return fmt.Sprintf("arith.%d %s, ...", f.Opcode, regName(f.Dst))
		}
		if f.Opcode == rsc.ArithNot {
			return fmt.Sprintf("%s %s", name, regName(f.Dst))
		}
		return fmt.Sprintf("%s %s, %s, %s", name, regName(f.Dst), regName(f.Src1), operandSuffix(f))
	case rsc.BlockMemory:
		name, ok := memNames[f.Opcode]
		if !ok {
			return fmt.Sprintf("mem.%d %s, ...", f.Opcode, regName(f.Dst))
		}
		return fmt.Sprintf("%s %s, %s, %s", name, regName(f.Dst), regName(f.Src1), operandSuffix(f))
	case rsc.BlockBranch:
		name, ok := branchNames[f.Opcode]
		if !ok {
			return fmt.Sprintf("branch.%d %s, ...", f.Opcode, regName(f.Dst))
		}
		return fmt.Sprintf("%s %s, %s, %s", name, regName(f.Dst), regName(f.Src1), operandSuffix(f))
	case rsc.BlockControl:
		name, ok := ctrlNames[f.Opcode]
		if !ok {
			return fmt.Sprintf("ctrl.%d", f.Opcode)
		}
		return name
	default:
		return fmt.Sprintf("<reserved block %d>", f.Block)
	}
}

func operandSuffix(f Fields) string {
	switch f.Scheme {
	case rsc.SchemeR:
		return regName(f.Src2)
	case rsc.SchemeUI:
		return fmt.Sprintf("#%d", f.Imm14)
	case rsc.SchemeSI:
		return fmt.Sprintf("#%d", int32(signExtend14(f.Imm14)))
	case rsc.SchemeIB:
		return fmt.Sprintf("#%d", f.Imm19)
	default:
		return "?"
	}
}

func signExtend14(n uint32) uint32 {
	const signBit = uint32(1) << 13
	if n&signBit != 0 {
		n |= ^uint32(mask14)
	}
	return n
}
