package authority

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/swig-sanity/util/crypto"
)

func TestType(t *testing.T) {
	for _, tp := range []Type{Ed25519, Ed25519Session, Secp256k1, Secp256k1Session} {
		parsed, err := ParseType(tp.String())
		require.NoError(t, err)
		assert.Equal(t, tp, parsed)
		assert.True(t, tp.Valid())
	}
	parsed, err := ParseType("ed25519")
	require.NoError(t, err)
	assert.Equal(t, Ed25519, parsed)

	_, err = ParseType("rsa")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.False(t, None.Valid())
	assert.Equal(t, "Type(9)", Type(9).String())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, NewEd25519Config(crypto.RepeatedPublicKey(1)).Validate())
	assert.ErrorIs(t, Config{Type: Ed25519, Data: make([]byte, 31)}.Validate(), ErrInvalidAuthorityData)
	assert.ErrorIs(t, Config{Type: None}.Validate(), ErrUnknownType)
	assert.NoError(t, Config{Type: Ed25519Session, Data: make([]byte, 80)}.Validate())
	assert.NoError(t, Config{Type: Secp256k1Session, Data: make([]byte, 112)}.Validate())
}

func TestConfig_Identity(t *testing.T) {
	id, err := NewEd25519Config(crypto.SystemProgramID).Identity()
	require.NoError(t, err)
	assert.Equal(t, "11111111111111111111111111111111", id)

	compressed, err := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)
	cfg, err := NewSecp256k1Config(compressed)
	require.NoError(t, err)
	assert.Len(t, cfg.Data, 64)
	id, err = cfg.Identity()
	require.NoError(t, err)
	assert.Equal(t, "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", id)

	_, err = NewSecp256k1Config([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidAuthorityData)
}

func TestConfig_Matches(t *testing.T) {
	cfg := NewEd25519Config(crypto.RepeatedPublicKey(1))
	assert.True(t, cfg.Matches(Ed25519, crypto.RepeatedPublicKey(1).Bytes()))
	assert.False(t, cfg.Matches(Ed25519, crypto.RepeatedPublicKey(2).Bytes()))
	assert.False(t, cfg.Matches(Secp256k1, crypto.RepeatedPublicKey(1).Bytes()))

	session := make([]byte, 80)
	copy(session, crypto.RepeatedPublicKey(7).Bytes())
	other := append([]byte(nil), session...)
	other[40] = 1
	sessionCfg := Config{Type: Ed25519Session, Data: session}
	assert.True(t, sessionCfg.Matches(Ed25519Session, other))
}
