package rsc

import "github.com/golang/glog"

// Branch opcodes.
const (
	BranchBR = uint8(iota) // unconditional
	BranchBEQ
	BranchBLT
	BranchBLE
	BranchBGT
	BranchBGE
	BranchCMP
)

// executeBranch implements the BRANCH block. Every opcode except CMP
// decides take_jump from the ZF/NF status flags and, if taken, sets
// gp[dst] <- op1+op2 (dst is conventionally PC, so this reads as
// "PC <- op1+op2") without the usual +4. CMP never jumps; instead it
// sets (ZF, NF) from the signed comparison of op1 and op2.
func (m *Machine) executeBranch() {
	dst, op1, op2 := m.cur.Dst, m.cur.Op1, m.cur.Op2
	zf, nf := m.Regs.Zero(), m.Regs.Negative()
	takeJump := false

	switch m.cur.Opcode {
	case BranchBR:
		takeJump = true
	case BranchBEQ:
		takeJump = zf
	case BranchBLT:
		takeJump = nf
	case BranchBLE:
		takeJump = zf || nf
	case BranchBGT:
		takeJump = !zf && !nf
	case BranchBGE:
		takeJump = !nf
	case BranchCMP:
		m.compare(op1, op2)
	default:
		glog.Warningf("rsc: %s: branch opcode %d", ErrInvalidOpcode, m.cur.Opcode)
	}

	if takeJump {
		m.Regs.Write(dst, op1+op2)
		return
	}
	incPC(m.Regs)
}

// compare sets ZF/NF from the two's-complement signed comparison of op1
// and op2: negative -> (0,1), zero -> (1,0), positive -> (0,0).
func (m *Machine) compare(op1, op2 uint32) {
	diff := int32(op1) - int32(op2)
	switch {
	case diff < 0:
		m.Regs.Write(RegZF, 0)
		m.Regs.Write(RegNF, 1)
	case diff == 0:
		m.Regs.Write(RegZF, 1)
		m.Regs.Write(RegNF, 0)
	default:
		m.Regs.Write(RegZF, 0)
		m.Regs.Write(RegNF, 0)
	}
}
