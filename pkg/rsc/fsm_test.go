package rsc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T, prog []byte) (*Machine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	m := NewMachine(&out)
	if prog != nil {
		m.LoadProgram(prog)
	}
	return m, &out
}

func TestBootDemoEmitsGreetingAndHalts(t *testing.T) {
	m, out := newTestMachine(t, nil)
	require.True(t, m.Run())

	require.Equal(t, []byte{'h', '\n'}, out.Bytes())
	require.True(t, m.Regs.Halted())
	pc, _ := m.Regs.Read(RegPC)
	require.Equal(t, uint32(dramBase+16), pc)
}

// addImm encodes "dst <- src1 + imm" with the UI scheme.
func addImm(dst, src1 uint8, imm uint32) uint32 {
	return uint32(BlockArith) | uint32(SchemeUI)<<3 | uint32(ArithAdd)<<5 |
		uint32(dst)<<8 | uint32(src1)<<13 | (imm&0x3fff)<<18
}

func addSI(dst, src1 uint8, imm int32) uint32 {
	return uint32(BlockArith) | uint32(SchemeSI)<<3 | uint32(ArithAdd)<<5 |
		uint32(dst)<<8 | uint32(src1)<<13 | (uint32(imm)&0x3fff)<<18
}

func halt() uint32 {
	return uint32(BlockControl) | uint32(CtrlHLT)<<5
}

func cmpUI(dst, src1 uint8, imm uint32) uint32 {
	return uint32(BlockBranch) | uint32(SchemeUI)<<3 | uint32(BranchCMP)<<5 |
		uint32(dst)<<8 | uint32(src1)<<13 | (imm&0x3fff)<<18
}

func beqIB(dst uint8, imm19 uint32) uint32 {
	return uint32(BlockBranch) | uint32(SchemeIB)<<3 | uint32(BranchBEQ)<<5 |
		uint32(dst)<<8 | imm19<<13
}

func brk() uint32 {
	return uint32(BlockControl) | uint32(CtrlBRK)<<5
}

// undefinedControlOpcode encodes a CONTROL instruction with an opcode
// between BRK (0) and HLT (7) that the machine does not define.
func undefinedControlOpcode() uint32 {
	return uint32(BlockControl) | uint32(3)<<5
}

// undefinedMemoryOpcode encodes a MEMORY instruction with an opcode
// past SW (5), which the 3-bit opcode field can represent but the
// machine does not define.
func undefinedMemoryOpcode() uint32 {
	return uint32(BlockMemory) | uint32(SchemeUI)<<3 | uint32(6)<<5
}

// undefinedBranchOpcode encodes a BRANCH instruction with an opcode
// past CMP (6), which the 3-bit opcode field can represent but the
// machine does not define.
func undefinedBranchOpcode() uint32 {
	return uint32(BlockBranch) | uint32(SchemeUI)<<3 | uint32(7)<<5
}

// reservedBlock encodes a word whose block field (3) falls in the
// reserved range, which must always fault.
func reservedBlock() uint32 {
	return uint32(BlockReg)
}

func encodeWords(words ...uint32) []byte {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		buf = append(buf, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return buf
}

func TestArithmeticAddsAccumulate(t *testing.T) {
	prog := encodeWords(
		addImm(RegR1, RegRZ, 3), // r1 <- 0 + 3
		addImm(RegR2, RegR1, 4), // r2 <- r1 + 4
		halt(),
	)
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())

	r1, _ := m.Regs.Read(RegR1)
	r2, _ := m.Regs.Read(RegR2)
	require.Equal(t, uint32(3), r1)
	require.Equal(t, uint32(7), r2)
}

func TestCompareAndBranchTaken(t *testing.T) {
	// r1 <- 1; cmp r1, #1 (sets ZF); beq pc, #target; hlt; <target>: hlt
	target := uint32(dramBase + 16)
	prog := encodeWords(
		addImm(RegR1, RegRZ, 1),
		cmpUI(0, RegR1, 1),
		beqIB(RegPC, target),
		halt(), // not reached
		halt(), // <target>
	)
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())
	require.True(t, m.Regs.Zero())

	pc, _ := m.Regs.Read(RegPC)
	require.Equal(t, target+4, pc) // the HLT at target advanced PC past it
}

func TestCompareAndBranchNotTaken(t *testing.T) {
	prog := encodeWords(
		addImm(RegR1, RegRZ, 1),
		cmpUI(0, RegR1, 2), // 1 != 2, ZF clear
		beqIB(RegPC, dramBase+100),
		halt(),
	)
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())
	require.False(t, m.Regs.Zero())

	pc, _ := m.Regs.Read(RegPC)
	require.Equal(t, uint32(dramBase+16), pc) // fell through past the HLT
}

func TestSignedImmediateSignExtension(t *testing.T) {
	prog := encodeWords(
		addSI(RegR1, RegRZ, -1),
		halt(),
	)
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())

	r1, _ := m.Regs.Read(RegR1)
	require.Equal(t, uint32(0xffffffff), r1)
}

func TestBusFaultTerminatesWithError(t *testing.T) {
	storeWord := uint32(BlockMemory) | uint32(SchemeUI)<<3 | uint32(MemSW)<<5 | uint32(RegR1)<<8
	prog := encodeWords(
		addImm(RegR1, RegRZ, 0x3fff), // r1 = 0x3fff (well outside DRAM + misc regions)
		storeWord,                    // sw r1, rz, #0 -> writes to address 0x3fff
		halt(),
	)
	m, _ := newTestMachine(t, prog)
	require.False(t, m.Run())
	require.True(t, m.Regs.Errored())
}

func TestZeroRegisterNeverObservablyMutates(t *testing.T) {
	prog := encodeWords(
		addImm(RegRZ, RegRZ, 42), // discard-result idiom: dst == RZ
		halt(),
	)
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())

	rz, _ := m.Regs.Read(RegRZ)
	require.Equal(t, uint32(0), rz)
}

// BREAK is sticky: CHECK keeps routing back to StateBreak forever once the
// BREAK bit is set, so Run (which loops until CycleState returns false)
// would never return. Drive CycleState directly with a cap instead.
func TestBreakIsStickyAndNeverHalts(t *testing.T) {
	prog := encodeWords(brk())
	m, _ := newTestMachine(t, prog)

	for i := 0; i < 50; i++ {
		m.CycleState()
	}

	require.True(t, m.Regs.Broken())
	require.False(t, m.Regs.Halted())
	require.False(t, m.Regs.Errored())
	require.Equal(t, StateBreak, m.State())
}

func TestControlUndefinedOpcodeIsDiagnosticOnly(t *testing.T) {
	prog := encodeWords(undefinedControlOpcode(), halt())
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())

	require.False(t, m.Regs.Errored())
	require.True(t, m.Regs.Halted())
}

func TestMemoryUndefinedOpcodeIsDiagnosticOnly(t *testing.T) {
	prog := encodeWords(undefinedMemoryOpcode(), halt())
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())

	require.False(t, m.Regs.Errored())
	require.True(t, m.Regs.Halted())
}

func TestBranchUndefinedOpcodeIsDiagnosticOnly(t *testing.T) {
	prog := encodeWords(undefinedBranchOpcode(), halt())
	m, _ := newTestMachine(t, prog)
	require.True(t, m.Run())

	require.False(t, m.Regs.Errored())
	require.True(t, m.Regs.Halted())
}

// Unlike an undefined opcode within a known block, a reserved block id
// is a terminal fault: execute's default case sets ERROR directly.
func TestReservedBlockSetsError(t *testing.T) {
	prog := encodeWords(reservedBlock())
	m, _ := newTestMachine(t, prog)
	require.False(t, m.Run())

	require.True(t, m.Regs.Errored())
	require.Equal(t, StateError, m.State())
}
