package rsc

import (
	"github.com/golang/glog"
)

// Memory map. Regions are checked in this order; the first one whose
// [Base, Base+Size) contains the address wins. This table is the single
// source of truth for both address translation and device routing - the
// alternative, a hardcoded switch over device ids, is exactly the design
// this replaces.
const (
	nullBase = 0x0
	nullSize = 1

	spiBase = 0x1
	spiSize = 512

	uart0Base = 0x201
	uart1Base = 0x202
	uart2Base = 0x203
	uartSize  = 1

	dramBase = 0x204
	DRAMSize = 4096
)

// region pairs an address range with the device that handles it. A nil
// dev marks the NULL region: any access there is a fault, not a device
// call.
type region struct {
	name string
	base uint32
	size uint32
	dev  Device
}

// Bus is the memory management unit: it routes an address to the device
// that owns it, enforces the shared 4-byte alignment granule, and raises
// faults through the register file it is given.
type Bus struct {
	regions []region
}

// NewBus builds the bus with the machine's fixed memory map: a NULL
// guard region, the SPI block device, three UART ports, and the DRAM.
// uart0/uart1/uart2 and spi are accepted as Device so UART0 can be a
// NetConsole instead of the usual SerialPort.
func NewBus(ram *RAM, uart0, uart1, uart2, spi Device) *Bus {
	return &Bus{
		regions: []region{
			{"null", nullBase, nullSize, nil},
			{"spi", spiBase, spiSize, spi},
			{"uart0", uart0Base, uartSize, uart0},
			{"uart1", uart1Base, uartSize, uart1},
			{"uart2", uart2Base, uartSize, uart2},
			{"dram", dramBase, DRAMSize, ram},
		},
	}
}

// translate scans the region table for the region owning addr. It does
// not itself enforce alignment or raise faults; callers do that.
func (b *Bus) translate(addr uint32) (region, bool) {
	for _, r := range b.regions {
		if addr >= r.base && addr < r.base+r.size {
			return r, true
		}
	}
	return region{}, false
}

// checkAlignment enforces that [addr, addr+size) lies within a single
// 4-byte granule, regardless of device: the machine models one shared
// data bus, so even a 1-byte UART port is checked against the 4-byte
// granule. No legal access size is large enough for that to matter.
func checkAlignment(addr, size uint32) bool {
	return addr%4+size <= 4
}

// Read performs a size-byte load from addr. On a translation, NULL, or
// alignment fault it sets the ERROR control bit on regs and returns 0.
// A device-level diagnostic fault (e.g. InvalidSize) is logged but does
// not set ERROR.
func (b *Bus) Read(regs *RegisterFile, addr, size uint32) uint32 {
	r, ok := b.translate(addr)
	if !ok {
		glog.Warningf("rsc: %s at 0x%08x", ErrBusFault, addr)
		regs.Write(RegERROR, 1)
		return 0
	}
	if r.dev == nil {
		glog.Warningf("rsc: %s", ErrNullAccess)
		regs.Write(RegERROR, 1)
		return 0
	}
	if !checkAlignment(addr, size) {
		glog.Warningf("rsc: %s at 0x%08x size %d", ErrMisalignment, addr, size)
		regs.Write(RegERROR, 1)
		return 0
	}
	v, err := r.dev.Read(addr-r.base, size)
	if err != nil {
		glog.Warningf("rsc: %s device read: %s", r.name, err)
	}
	return v
}

// Write performs a size-byte store of val to addr. Fault handling
// mirrors Read.
func (b *Bus) Write(regs *RegisterFile, addr, size, val uint32) {
	r, ok := b.translate(addr)
	if !ok {
		glog.Warningf("rsc: %s at 0x%08x", ErrBusFault, addr)
		regs.Write(RegERROR, 1)
		return
	}
	if r.dev == nil {
		glog.Warningf("rsc: %s", ErrNullAccess)
		regs.Write(RegERROR, 1)
		return
	}
	if !checkAlignment(addr, size) {
		glog.Warningf("rsc: %s at 0x%08x size %d", ErrMisalignment, addr, size)
		regs.Write(RegERROR, 1)
		return
	}
	if err := r.dev.Write(addr-r.base, size, val); err != nil {
		glog.Warningf("rsc: %s device write: %s", r.name, err)
	}
}
