package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	w := NewWriter(0)
	w.U8(1)
	w.U16(0x0203)
	w.U32(0x04050607)
	w.U64(0x08090a0b0c0d0e0f)
	require.NoError(t, w.Bytes32([]byte{0xaa, 0xbb}))
	require.NoError(t, w.Bytes16([]byte{0xcc}))
	w.Raw([]byte{0xdd})

	assert.Equal(t, []byte{
		0x01,
		0x03, 0x02,
		0x07, 0x06, 0x05, 0x04,
		0x0f, 0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09, 0x08,
		0x02, 0x00, 0x00, 0x00, 0xaa, 0xbb,
		0x01, 0x00, 0xcc,
		0xdd,
	}, w.Bytes())

	r := NewReader(w.Bytes())
	u8, err := r.U8()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), u8)
	u16, err := r.U16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), u16)
	u32, err := r.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04050607), u32)
	u64, err := r.U64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x08090a0b0c0d0e0f), u64)
	b32, err := r.Bytes32()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa, 0xbb}, b32)
	b16, err := r.Bytes16()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xcc}, b16)
	assert.Equal(t, []byte{0xdd}, r.Rest())
	assert.Zero(t, r.Remaining())
}

func TestReader_EOF(t *testing.T) {
	r := NewReader([]byte{1, 0, 0})
	_, err := r.U32()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	r = NewReader([]byte{0xff, 0xff, 0xff, 0x00, 1})
	_, err = r.Bytes32()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestWriter_PutU64At(t *testing.T) {
	w := NewWriter(16)
	w.U64(0)
	w.U8(7)
	w.PutU64At(0, uint64(w.Len()))
	assert.Equal(t, []byte{9, 0, 0, 0, 0, 0, 0, 0, 7}, w.Bytes())
}
