// Package rsc implements the core of a small 32-bit load/store machine:
// a register file, a memory-mapped bus that multiplexes RAM and a couple
// of peripheral ports, an instruction decoder, and the fetch-decode-
// execute-check state machine that drives them.
//
// Instruction format
//
// Every instruction is a single 32-bit word, little-endian in memory.
// Bit positions are counted from the LSB:
//
//	<Block:3><Scheme:2><Opcode:3><Dst:5><Src1:5><payload...>
//
// Block selects the functional unit (ARITH, MEMORY, BRANCH, CONTROL, or
// one of the reserved slots). Scheme selects how the remaining bits are
// read:
//
//	R  - <Src2:5>                    register-register
//	UI - <Imm:14>                    zero-extended immediate
//	SI - <Imm:14>                    sign-extended immediate
//	IB - <Imm:19>, Src1 unused       long branch immediate
//
// Address space
//
// The bus routes an access to exactly one of NULL, SPI (block device
// stub), three single-byte UARTs, or a 4KB DRAM region, in that order,
// and rejects any multi-byte access that straddles a 4-byte boundary.
//
// The VM state in this package (Machine, RegisterFile, Bus) is meant to
// be owned by a single goroutine; nothing here is safe for concurrent
// use from multiple goroutines at once.
package rsc
