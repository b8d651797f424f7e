package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKey(t *testing.T) {
	t.Run("system program", func(t *testing.T) {
		assert.Equal(t, "11111111111111111111111111111111", SystemProgramID.String())
		assert.True(t, SystemProgramID.IsZero())
	})
	t.Run("parse roundtrip", func(t *testing.T) {
		pk := RepeatedPublicKey(3)
		parsed, err := ParsePublicKey(pk.String())
		require.NoError(t, err)
		assert.Equal(t, pk, parsed)
	})
	t.Run("text", func(t *testing.T) {
		var pk PublicKey
		require.NoError(t, pk.UnmarshalText([]byte(SwigProgramID.String())))
		assert.True(t, pk.Equals(SwigProgramID))
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := ParsePublicKey("0OIl")
		assert.ErrorIs(t, err, ErrInvalidBase58)
		_, err = ParsePublicKey("1111")
		assert.ErrorIs(t, err, ErrIncorrectKeyLength)
	})
}

func TestFindProgramAddress(t *testing.T) {
	id := [13]byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	addr, bump, err := FindSwigAddress(id)
	require.NoError(t, err)
	assert.False(t, IsOnCurve(addr[:]))

	again, err := CreateProgramAddress([][]byte{[]byte("swig"), id[:], {bump}}, SwigProgramID)
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	addr2, bump2, err := FindSwigAddress(id)
	require.NoError(t, err)
	assert.Equal(t, addr, addr2)
	assert.Equal(t, bump, bump2)

	_, _, err = FindProgramAddress([][]byte{make([]byte, 33)}, SwigProgramID)
	assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)
}

func TestIsOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	assert.True(t, IsOnCurve(pub))
	assert.False(t, IsOnCurve([]byte{1, 2, 3}))
}

func TestMnemonic_DeriveKey(t *testing.T) {
	m, err := NewMnemonic(12)
	require.NoError(t, err)

	k0, err := m.DeriveKey(0)
	require.NoError(t, err)
	k0again, err := m.DeriveKey(0)
	require.NoError(t, err)
	k1, err := m.DeriveKey(1)
	require.NoError(t, err)

	assert.Equal(t, k0.PublicKey(), k0again.PublicKey())
	assert.NotEqual(t, k0.PublicKey(), k1.PublicKey())

	msg := []byte("swig")
	assert.True(t, ed25519.Verify(k0.PublicKey().Bytes(), msg, k0.Sign(msg)))

	_, err = NewMnemonic(13)
	assert.ErrorIs(t, err, ErrInvalidWordCount)
	_, err = Mnemonic("not a valid mnemonic").DeriveKey(0)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestSecp256k1(t *testing.T) {
	// generator point, the public key of private key 1
	const (
		x = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
		y = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	)
	raw, err := hex.DecodeString(x + y)
	require.NoError(t, err)
	compressed, err := hex.DecodeString("02" + x)
	require.NoError(t, err)
	prefixed, err := hex.DecodeString("04" + x + y)
	require.NoError(t, err)

	for _, in := range [][]byte{raw, compressed, prefixed} {
		norm, err := NormalizeSecp256k1(in)
		require.NoError(t, err)
		assert.Equal(t, raw, norm)
	}

	addr, err := EthereumAddress(raw)
	require.NoError(t, err)
	assert.Equal(t, "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", addr)

	_, err = NormalizeSecp256k1(make([]byte, 33))
	assert.ErrorIs(t, err, ErrInvalidSecp256k1Key)
	_, err = EthereumAddress(compressed)
	assert.ErrorIs(t, err, ErrInvalidSecp256k1Key)
}
