package fixture

import (
	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/swig/swigstate"
	"github.com/anyproto/swig-sanity/swig/swiginstruction"
	"github.com/anyproto/swig-sanity/util/crypto"
)

// Builder produces the bytes of one named fixture
type Builder struct {
	Name  string
	Build func() ([]byte, error)
}

// KeySource maps a fixture key index to the ed25519 authority key standing for it
type KeySource func(i byte) (crypto.PublicKey, error)

// RepeatedKeys returns keys filled with the index byte
func RepeatedKeys(i byte) (crypto.PublicKey, error) {
	return crypto.RepeatedPublicKey(i), nil
}

// MnemonicKeys derives index i on the solana path m/44'/501'/i'/0'
func MnemonicKeys(m crypto.Mnemonic) (KeySource, error) {
	seed, err := m.Seed()
	if err != nil {
		return nil, err
	}
	return func(i byte) (crypto.PublicKey, error) {
		k, err := crypto.DeriveKeyFromSeed(seed, uint32(i))
		if err != nil {
			return crypto.PublicKey{}, err
		}
		return k.PublicKey(), nil
	}, nil
}

const (
	actorKeyIdx        = 2
	newAuthorityKeyIdx = 4
)

var (
	swigAccount  = crypto.RepeatedPublicKey(3)
	innerAccount = crypto.RepeatedPublicKey(4)
	otherAccount = crypto.RepeatedPublicKey(5)
	innerProgram = crypto.RepeatedPublicKey(6)
)

func manageToken(mint byte, amount uint64) swigstate.Action {
	return swigstate.Token{Key: crypto.RepeatedPublicKey(mint), Limit: swigstate.Manage{Amount: amount}}
}

// Builders returns every fixture builder in generation order
func Builders(keys KeySource) []Builder {
	b := builders{keys: keys}
	return []Builder{
		{Name: "swig", Build: b.swig},
		{Name: "create", Build: b.create},
		{Name: "add_authority", Build: b.addAuthority},
		{Name: "remove_authority", Build: b.removeAuthority},
		{Name: "replace_authority", Build: b.replaceAuthority},
		{Name: "sign", Build: b.sign},
	}
}

type builders struct {
	keys KeySource
}

func (b builders) ed25519(i byte) (authority.Config, error) {
	pk, err := b.keys(i)
	if err != nil {
		return authority.Config{}, err
	}
	return authority.NewEd25519Config(pk), nil
}

func (b builders) swig() ([]byte, error) {
	roles := make([]swigstate.Role, 0, 3)
	for i := byte(0); i < 3; i++ {
		cfg, err := b.ed25519(i)
		if err != nil {
			return nil, err
		}
		var actions []swigstate.Action
		if i == 0 {
			actions = append(actions, manageToken(4, 100))
		} else {
			actions = append(actions, swigstate.All{})
		}
		actions = append(actions, manageToken(i, 100))
		roles = append(roles, swigstate.NewRole(cfg, 0, 0, actions...))
	}
	return swigstate.Encode(swigstate.Swig{Roles: roles})
}

func (b builders) create() ([]byte, error) {
	actor, err := b.keys(actorKeyIdx)
	if err != nil {
		return nil, err
	}
	var id [swigstate.IDLen]byte
	for i := range id {
		id[i] = 2
	}
	ix, err := swiginstruction.NewCreateV1(swiginstruction.CreatePayload{
		Swig:      swigAccount,
		Payer:     actor,
		ID:        id,
		Authority: authority.NewEd25519Config(actor),
	})
	if err != nil {
		return nil, err
	}
	return ix.Data, nil
}

func (b builders) addAuthority() ([]byte, error) {
	actor, err := b.keys(actorKeyIdx)
	if err != nil {
		return nil, err
	}
	newAuthority, err := b.ed25519(newAuthorityKeyIdx)
	if err != nil {
		return nil, err
	}
	ix, err := swiginstruction.NewAddAuthorityV1(swiginstruction.AddAuthorityPayload{
		Swig:         swigAccount,
		Payer:        actor,
		Authority:    actor,
		ActingRoleID: 1,
		NewAuthority: newAuthority,
		Actions:      []swigstate.Action{manageToken(5, 200)},
	})
	if err != nil {
		return nil, err
	}
	return ix.Data, nil
}

func (b builders) removeAuthority() ([]byte, error) {
	actor, err := b.keys(actorKeyIdx)
	if err != nil {
		return nil, err
	}
	ix, err := swiginstruction.NewRemoveAuthorityV1(swiginstruction.RemoveAuthorityPayload{
		Swig:         swigAccount,
		Payer:        actor,
		Authority:    actor,
		ActingRoleID: 1,
		RemoveRoleID: 2,
	})
	if err != nil {
		return nil, err
	}
	return ix.Data, nil
}

func (b builders) replaceAuthority() ([]byte, error) {
	actor, err := b.keys(actorKeyIdx)
	if err != nil {
		return nil, err
	}
	newAuthority, err := b.ed25519(newAuthorityKeyIdx)
	if err != nil {
		return nil, err
	}
	ix, err := swiginstruction.NewReplaceAuthorityV1(swiginstruction.ReplaceAuthorityPayload{
		Swig:          swigAccount,
		Payer:         actor,
		Authority:     actor,
		ActingRoleID:  1,
		ReplaceRoleID: 2,
		NewAuthority:  newAuthority,
		Actions:       []swigstate.Action{manageToken(5, 200)},
	})
	if err != nil {
		return nil, err
	}
	return ix.Data, nil
}

func (b builders) sign() ([]byte, error) {
	actor, err := b.keys(actorKeyIdx)
	if err != nil {
		return nil, err
	}
	ix, err := swiginstruction.NewSignV1(swiginstruction.SignPayload{
		Swig:      swigAccount,
		Payer:     actor,
		Authority: actor,
		RoleID:    1,
		Instructions: []swiginstruction.Instruction{{
			ProgramID: innerProgram,
			Accounts: []swiginstruction.AccountMeta{
				swiginstruction.Writable(innerAccount, true),
				swiginstruction.Writable(otherAccount, false),
				swiginstruction.Readonly(innerAccount, false),
				swiginstruction.Readonly(swigAccount, true),
			},
			Data: []byte{7, 9},
		}},
	})
	if err != nil {
		return nil, err
	}
	return ix.Data, nil
}
