package rsc

// BootImage returns the canonical four-instruction demo program the
// machine installs at the base of DRAM on reset. Loading an arbitrary
// program instead of this demo is an external collaborator's job (a
// boot loader), out of scope for the core; this hard-wired image is all
// the core itself ever puts in memory.
//
// Encoded as little-endian words:
//
//	ADD r2, rz, #513     ; r2 now holds the UART0 address
//	SB  r2, rz, #'h'      ; mmu_write(513, 'h')
//	SB  r2, rz, #'\n'     ; mmu_write(513, '\n')
//	HLT
func BootImage() []byte {
	return []byte{
		0x08, 0x06, 0x04, 0x08,
		0x69, 0x06, 0xa0, 0x01,
		0x69, 0x06, 0x28, 0x00,
		0xe7, 0x00, 0x00, 0x00,
	}
}
