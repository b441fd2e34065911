package rsc

import "github.com/golang/glog"

// Control opcodes. Everything between BRK and HLT is undefined.
const (
	CtrlBRK = uint8(0)
	CtrlHLT = uint8(7)
)

// executeControl implements the CONTROL block: BRK sets the BREAK bit,
// HLT sets the HALT bit, and both advance PC by 4 like every other
// instruction before the FSM notices the flag at CHECK.
func (m *Machine) executeControl() {
	switch m.cur.Opcode {
	case CtrlHLT:
		m.Regs.Write(RegHALT, 1)
	case CtrlBRK:
		m.Regs.Write(RegBREAK, 1)
	default:
		glog.Warningf("rsc: %s: control opcode %d", ErrInvalidOpcode, m.cur.Opcode)
	}
	incPC(m.Regs)
}
