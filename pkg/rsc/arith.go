package rsc

import "github.com/golang/glog"

// Arithmetic opcodes.
const (
	ArithAdd = uint8(iota)
	ArithSub
	ArithShl
	ArithShr
	ArithAnd
	ArithOr
	ArithNot
	ArithXor
)

// executeArith computes gp[dst] <- f(op1, op2) for the ARITH block. NOT
// is the one unary operation: it complements the current value of dst
// and ignores both operands. Every result wraps modulo 2^32, which is
// simply what Go's uint32 arithmetic already does. PC always advances
// by 4 afterwards, even for an undefined opcode.
func (m *Machine) executeArith() {
	dst, op1, op2 := m.cur.Dst, m.cur.Op1, m.cur.Op2
	cur, _ := m.Regs.Read(dst)

	switch m.cur.Opcode {
	case ArithAdd:
		m.Regs.Write(dst, op1+op2)
	case ArithSub:
		m.Regs.Write(dst, op1-op2)
	case ArithShl:
		m.Regs.Write(dst, op1<<(op2&31))
	case ArithShr:
		m.Regs.Write(dst, op1>>(op2&31))
	case ArithAnd:
		m.Regs.Write(dst, op1&op2)
	case ArithOr:
		m.Regs.Write(dst, op1|op2)
	case ArithNot:
		m.Regs.Write(dst, ^cur)
	case ArithXor:
		m.Regs.Write(dst, op1^op2)
	default:
		glog.Warningf("rsc: %s: arith opcode %d", ErrInvalidOpcode, m.cur.Opcode)
	}
	incPC(m.Regs)
}
