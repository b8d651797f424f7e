package swigstate

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/util/crypto"
	"github.com/anyproto/swig-sanity/util/layout"
)

func ed(b byte) authority.Config {
	return authority.NewEd25519Config(crypto.RepeatedPublicKey(b))
}

func testSwig() Swig {
	return Swig{
		ID:   [IDLen]byte{1, 2, 3},
		Bump: 254,
		Roles: []Role{
			NewRole(ed(1), 0, 0, All{}),
			NewRole(ed(2), 10, 20,
				ManageAuthority{},
				Sol{Limit: Temporal{Amount: 5, Window: 100, LastReset: 7}},
				Token{Key: crypto.RepeatedPublicKey(4), Limit: Manage{Amount: 100}},
				Tokens{Limit: Unlimited{}},
				Program{Key: crypto.RepeatedPublicKey(6)},
			),
			NewRole(authority.Config{Type: authority.Secp256k1, Data: make([]byte, 64)}, 0, 0),
		},
	}
}

func TestEncodeRole(t *testing.T) {
	data, err := EncodeRole(NewRole(ed(1), 0, 0, All{}))
	require.NoError(t, err)
	require.Len(t, data, 67)

	assert.Equal(t, uint64(67), binary.LittleEndian.Uint64(data[0:8]))
	assert.Equal(t, uint16(authority.Ed25519), binary.LittleEndian.Uint16(data[8:10]))
	assert.Equal(t, make([]byte, 16), data[10:26])
	assert.Equal(t, uint32(32), binary.LittleEndian.Uint32(data[26:30]))
	assert.Equal(t, crypto.RepeatedPublicKey(1).Bytes(), data[30:62])
	assert.Equal(t, []byte{1, 0, 0, 0, byte(KindAll)}, data[62:])
}

func TestEncodeDecode(t *testing.T) {
	s := testSwig()
	data, err := Encode(s)
	require.NoError(t, err)

	again, err := Encode(s)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)

	t.Run("no roles", func(t *testing.T) {
		empty := Swig{ID: [IDLen]byte{9}, Bump: 1}
		data, err := Encode(empty)
		require.NoError(t, err)
		decoded, err := Decode(data)
		require.NoError(t, err)
		assert.Nil(t, decoded.Roles)
		assert.Equal(t, empty, decoded)
	})
}

func TestEncode_Errors(t *testing.T) {
	t.Run("invalid authority", func(t *testing.T) {
		s := Swig{Roles: []Role{{AuthorityType: authority.Ed25519, AuthorityData: []byte{1}}}}
		_, err := Encode(s)
		assert.ErrorIs(t, err, authority.ErrInvalidAuthorityData)
	})
	t.Run("nil limit", func(t *testing.T) {
		s := Swig{Roles: []Role{NewRole(ed(1), 0, 0, Sol{})}}
		_, err := Encode(s)
		assert.ErrorIs(t, err, ErrUnknownLimit)
	})
	t.Run("nil action", func(t *testing.T) {
		_, err := EncodeActions([]Action{nil})
		assert.ErrorIs(t, err, ErrUnknownAction)
	})
}

func TestDecode_Errors(t *testing.T) {
	data, err := Encode(testSwig())
	require.NoError(t, err)

	t.Run("discriminator", func(t *testing.T) {
		bad := append([]byte{}, data...)
		bad[0] = 2
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrBadDiscriminator)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(data[:len(data)-1])
		assert.ErrorIs(t, err, layout.ErrUnexpectedEOF)
	})
	t.Run("trailing", func(t *testing.T) {
		_, err := Decode(append(append([]byte{}, data...), 0))
		assert.ErrorIs(t, err, ErrTrailingData)
	})
	t.Run("role size", func(t *testing.T) {
		bad := append([]byte{}, data...)
		// first role size field follows disc, id, bump and role count
		binary.LittleEndian.PutUint64(bad[19:], 1)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrRoleSizeMismatch)
	})
	t.Run("unknown action", func(t *testing.T) {
		_, err := ReadActions(layout.NewReader([]byte{1, 0, 0, 0, 42}))
		assert.ErrorIs(t, err, ErrUnknownAction)
	})
	t.Run("unknown limit", func(t *testing.T) {
		_, err := ReadActions(layout.NewReader([]byte{1, 0, 0, 0, byte(KindSol), 9}))
		assert.ErrorIs(t, err, ErrUnknownLimit)
	})
}

func TestRole_Queries(t *testing.T) {
	s := testSwig()
	root, limited, bare := s.Roles[0], s.Roles[1], s.Roles[2]

	assert.True(t, root.IsRoot())
	assert.False(t, limited.IsRoot())

	assert.True(t, root.CanManageAuthority())
	assert.True(t, limited.CanManageAuthority())
	assert.False(t, bare.CanManageAuthority())

	assert.True(t, root.CanUseProgram(crypto.RepeatedPublicKey(9)))
	assert.True(t, limited.CanUseProgram(crypto.RepeatedPublicKey(6)))
	assert.False(t, limited.CanUseProgram(crypto.RepeatedPublicKey(9)))

	assert.Equal(t, Spend{Allowed: true, Unlimited: true}, root.SolSpendLimit())
	assert.Equal(t, Spend{Allowed: true, Amount: 5}, limited.SolSpendLimit())
	assert.Equal(t, Spend{}, bare.SolSpendLimit())

	// Tokens{Unlimited} applies to every mint
	assert.Equal(t, Spend{Allowed: true, Unlimited: true, Amount: 100}, limited.TokenSpendLimit(crypto.RepeatedPublicKey(4)))
	assert.Equal(t, Spend{Allowed: true, Unlimited: true}, limited.TokenSpendLimit(crypto.RepeatedPublicKey(8)))

	assert.True(t, root.ActiveAt(0))
	assert.False(t, limited.ActiveAt(9))
	assert.True(t, limited.ActiveAt(10))
	assert.False(t, limited.ActiveAt(20))
}

func TestNewRole_Copies(t *testing.T) {
	cfg := ed(1)
	actions := []Action{All{}}
	r := NewRole(cfg, 0, 0, actions...)
	cfg.Data[0] = 9
	actions[0] = ManageAuthority{}
	assert.Equal(t, byte(1), r.AuthorityData[0])
	assert.Equal(t, All{}, r.Actions[0])
}

func TestSwig_FindRole(t *testing.T) {
	s := testSwig()
	id, r, ok := s.FindRoleByAuthority(ed(2))
	require.True(t, ok)
	assert.Equal(t, uint32(1), id)
	assert.Equal(t, s.Roles[1], r)

	_, _, ok = s.FindRoleByAuthority(ed(7))
	assert.False(t, ok)

	got, err := s.Role(2)
	require.NoError(t, err)
	assert.Equal(t, authority.Secp256k1, got.AuthorityType)
	_, err = s.Role(3)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
