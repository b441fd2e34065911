package rsc

import "github.com/golang/glog"

// Memory opcodes.
const (
	MemLB = uint8(iota) // load byte, zero-extended
	MemLHW              // load half-word, zero-extended
	MemLW               // load word
	MemSB               // store byte
	MemSHW              // store half-word
	MemSW               // store word
)

// executeMemory implements the MEMORY block. ptr is captured from dst
// before any store, because the store addressing mode and the load
// destination both happen to be dst: a load overwrites the very
// register it used as its base. PC advances by 4 afterwards.
func (m *Machine) executeMemory() {
	dst, op1, op2 := m.cur.Dst, m.cur.Op1, m.cur.Op2
	ptr, _ := m.Regs.Read(dst)

	switch m.cur.Opcode {
	case MemLB:
		v := m.Bus.Read(m.Regs, op1+op2, 1)
		m.Regs.Write(dst, v)
	case MemLHW:
		v := m.Bus.Read(m.Regs, op1+op2, 2)
		m.Regs.Write(dst, v)
	case MemLW:
		v := m.Bus.Read(m.Regs, op1+op2, 4)
		m.Regs.Write(dst, v)
	case MemSB:
		m.Bus.Write(m.Regs, ptr+op1, 1, op2)
	case MemSHW:
		m.Bus.Write(m.Regs, ptr+op1, 2, op2)
	case MemSW:
		m.Bus.Write(m.Regs, ptr+op1, 4, op2)
	default:
		glog.Warningf("rsc: %s: memory opcode %d", ErrInvalidOpcode, m.cur.Opcode)
	}
	incPC(m.Regs)
}
