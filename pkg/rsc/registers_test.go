package rsc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterFileZeroRegisterIsAlwaysZero(t *testing.T) {
	r := &RegisterFile{}
	require.NoError(t, r.Write(RegRZ, 0xdeadbeef))
	v, err := r.Read(RegRZ)
	require.NoError(t, err)
	require.Equal(t, uint32(0), v)
}

func TestRegisterFileGPRoundTrip(t *testing.T) {
	r := &RegisterFile{}
	require.NoError(t, r.Write(RegR5, 12345))
	v, err := r.Read(RegR5)
	require.NoError(t, err)
	require.Equal(t, uint32(12345), v)
}

func TestRegisterFileStatusFlagsTakeOnlyLowBit(t *testing.T) {
	r := &RegisterFile{}
	require.NoError(t, r.Write(RegZF, 0xfffffffe)) // low bit clear
	v, err := r.Read(RegZF)
	require.NoError(t, err)
	require.Equal(t, uint32(0), v)

	require.NoError(t, r.Write(RegNF, 0xffffffff)) // low bit set
	v, err = r.Read(RegNF)
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)
}

func TestRegisterFileInvalidIndexFaults(t *testing.T) {
	r := &RegisterFile{}
	_, err := r.Read(200)
	require.ErrorIs(t, err, ErrInvalidRegister)

	err = r.Write(200, 1)
	require.True(t, errors.Is(err, ErrInvalidRegister))
}

func TestRegisterFileDumpListsEveryGPRegister(t *testing.T) {
	r := &RegisterFile{}
	r.Write(RegR1, 7)
	dump := r.Dump()
	require.Equal(t, int(NumGPRegisters), strings.Count(dump, "\n"))
	require.Contains(t, dump, "r1: 7 7")
	require.Contains(t, dump, "rz: 0 0")
	require.Contains(t, dump, "pc: 0 0")
}
