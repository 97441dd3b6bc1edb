package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	// Byte 0b11_01_00_01 packs, low bits first: index0=01(NeverUsed),
	// index1=00(Busy), index2=01(NeverUsed), index3=11(Free).
	data := []byte{0b11_01_00_01}

	e0, err := Decode(data, 0)
	require.NoError(t, err)
	require.Equal(t, NeverUsed, e0)

	e1, err := Decode(data, 1)
	require.NoError(t, err)
	require.Equal(t, Busy, e1)

	e2, err := Decode(data, 2)
	require.NoError(t, err)
	require.Equal(t, NeverUsed, e2)

	e3, err := Decode(data, 3)
	require.NoError(t, err)
	require.Equal(t, Free, e3)
}

func TestDecode_InvalidValue(t *testing.T) {
	// 0b10 (2) is not a defined entry value.
	data := []byte{0b00_00_00_10}
	_, err := Decode(data, 0)
	require.Error(t, err)
}

func TestDecode_OutOfRange(t *testing.T) {
	data := []byte{0x00}
	_, err := Decode(data, 4)
	require.Error(t, err)

	_, err = Decode(data, -1)
	require.Error(t, err)
}

func TestIsAllocated(t *testing.T) {
	require.True(t, IsAllocated(Busy))
	require.False(t, IsAllocated(NeverUsed))
	require.False(t, IsAllocated(Free))
}

func TestCount(t *testing.T) {
	require.Equal(t, 0, Count(nil))
	require.Equal(t, 4, Count([]byte{0x00}))
	require.Equal(t, 8, Count([]byte{0x00, 0x00}))
}
