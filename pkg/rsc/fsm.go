package rsc

import (
	"fmt"
	"io"

	"github.com/golang/glog"
)

// State is one step of the fetch-decode-execute-check loop.
type State uint8

const (
	StateInit State = iota
	StateFetch
	StateDecode
	StateExecute
	StateCheck
	StateBreak
	StateError
	StateHalt
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateFetch:
		return "FETCH"
	case StateDecode:
		return "DECODE"
	case StateExecute:
		return "EXECUTE"
	case StateCheck:
		return "CHECK"
	case StateBreak:
		return "BREAK"
	case StateError:
		return "ERROR"
	case StateHalt:
		return "HALT"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Machine is one instance of the simulator: a register file, a bus, and
// the FSM's own scratch state. Grouping these into one struct (rather
// than the package-level singletons the original used) lets a program
// run more than one machine and gives tests a clean fixture per case.
type Machine struct {
	Regs *RegisterFile
	Bus  *Bus
	RAM  *RAM

	state State
	cur   Instruction // last successfully decoded instruction; FETCH overwrites Word
}

// NewMachine constructs a machine with its three serial ports wired to
// out (typically os.Stdout), boots with the demo program installed, and
// is ready to run.
func NewMachine(out io.Writer) *Machine {
	return NewMachineWithConsole(NewSerialPort(out), out)
}

// NewMachineWithConsole is like NewMachine but lets the caller swap in
// a different Device for UART0 (for example a NetConsole), while UART1
// and UART2 still fall back to out. The boot demo greets over UART0,
// so this is how a remote console gets to see it.
func NewMachineWithConsole(uart0 Device, out io.Writer) *Machine {
	ram := NewRAM(DRAMSize)
	m := &Machine{
		Regs: &RegisterFile{},
		RAM:  ram,
		Bus:  NewBus(ram, uart0, NewSerialPort(out), NewSerialPort(out), NewBlockDevice()),
	}
	m.Reset()
	return m
}

// Reset zeroes every register, sets PC to the DRAM base, zeroes DRAM,
// and installs the boot image. This is the machine's whole lifecycle:
// there is no mid-run teardown.
func (m *Machine) Reset() {
	m.resetRegsAndPC()
	for i := range m.RAM.data {
		m.RAM.data[i] = 0
	}
	m.RAM.loadBytes(BootImage())
	m.state = StateInit
	m.cur = Instruction{}
}

// resetRegsAndPC zeroes every register and flag, then sets PC to the
// DRAM base. Shared by Reset and LoadProgram so re-arming a machine with
// a new image leaves it in the same clean state a fresh machine starts
// in, rather than carrying over the previous run's HALT/ERROR/ZF/NF.
func (m *Machine) resetRegsAndPC() {
	m.Regs.Reset()
	m.Regs.Write(RegPC, dramBase)
}

// LoadProgram re-arms the machine with prog in place of whatever image
// is currently installed: every register and flag is reset exactly as
// Reset does, DRAM is zeroed and reloaded with prog, and the FSM
// rewinds to INIT. Used by the CLI's -program flag; the core itself
// never calls this.
func (m *Machine) LoadProgram(prog []byte) {
	m.resetRegsAndPC()
	for i := range m.RAM.data {
		m.RAM.data[i] = 0
	}
	m.RAM.loadBytes(prog)
	m.state = StateInit
	m.cur = Instruction{}
}

// State returns the FSM's current state.
func (m *Machine) State() State { return m.state }

// CurrentWord returns the instruction word most recently fetched (and,
// once DECODE has run, decoded). Intended for tracing/diagnostics.
func (m *Machine) CurrentWord() uint32 { return m.cur.Word }

// CycleState advances the FSM by exactly one state and reports whether
// the host should keep calling it. It returns false once HALT or ERROR
// has been reached.
func (m *Machine) CycleState() bool {
	switch m.state {
	case StateInit:
		m.state = StateFetch

	case StateFetch:
		pc, _ := m.Regs.Read(RegPC)
		word := m.Bus.Read(m.Regs, pc, 4)
		m.cur.Word = word
		m.state = StateDecode

	case StateDecode:
		if ins, ok := decode(m.Regs, m.cur.Word); ok {
			m.cur = ins
		}
		// on !ok, m.cur keeps its previous operands: see decode's doc.
		m.state = StateExecute

	case StateExecute:
		m.execute()
		m.state = StateCheck

	case StateCheck:
		m.state = m.checkCtrl()

	case StateBreak:
		m.state = StateBreak

	case StateError:
		glog.Errorf("rsc: machine halted on error\ninstruction: 0x%08x\n%s", m.cur.Word, m.Regs.Dump())
		return false

	case StateHalt:
		return false
	}
	return true
}

// Run drives CycleState until the machine stops and returns whether it
// stopped cleanly (via HALT) as opposed to an ERROR.
func (m *Machine) Run() bool {
	for m.CycleState() {
	}
	return !m.Regs.Errored()
}

// checkCtrl picks CHECK's successor state. Priority is HALT > BREAK >
// ERROR > FETCH: a HALT or BREAK set in the same cycle as an ERROR masks
// it. This ordering looks backwards if the intent is "ERROR is always
// terminal", but it is the behaviour this simulator preserves.
func (m *Machine) checkCtrl() State {
	switch {
	case m.Regs.Halted():
		return StateHalt
	case m.Regs.Broken():
		return StateBreak
	case m.Regs.Errored():
		return StateError
	default:
		return StateFetch
	}
}

func incPC(regs *RegisterFile) {
	pc, _ := regs.Read(RegPC)
	regs.Write(RegPC, pc+4)
}

// execute dispatches the currently decoded instruction to its block's
// executor and mutates the machine's register file and/or memory.
func (m *Machine) execute() {
	switch m.cur.Block {
	case BlockArith:
		m.executeArith()
	case BlockMemory:
		m.executeMemory()
	case BlockBranch:
		m.executeBranch()
	case BlockControl:
		m.executeControl()
	default:
		glog.Warningf("rsc: %s: reserved block %d", ErrInvalidOpcode, m.cur.Block)
		m.Regs.Write(RegERROR, 1)
	}
}
