package swiginstruction

import (
	"fmt"
	"math"

	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/swig/swigstate"
	"github.com/anyproto/swig-sanity/util/crypto"
	"github.com/anyproto/swig-sanity/util/layout"
)

type CreatePayload struct {
	Swig      crypto.PublicKey
	Payer     crypto.PublicKey
	ID        [swigstate.IDLen]byte
	Bump      uint8
	Authority authority.Config
	StartSlot uint64
	EndSlot   uint64
}

// NewCreateV1 creates a swig account with a single root authority
func NewCreateV1(p CreatePayload) (Instruction, error) {
	if err := p.Authority.Validate(); err != nil {
		return Instruction{}, err
	}
	w := layout.NewWriter(2 + swigstate.IDLen + 1 + 2 + 16 + 4 + len(p.Authority.Data))
	w.U16(uint16(CreateV1))
	w.Raw(p.ID[:])
	w.U8(p.Bump)
	w.U16(uint16(p.Authority.Type))
	w.U64(p.StartSlot)
	w.U64(p.EndSlot)
	if err := w.Bytes32(p.Authority.Data); err != nil {
		return Instruction{}, err
	}
	return Instruction{
		ProgramID: crypto.SwigProgramID,
		Accounts: []AccountMeta{
			Writable(p.Swig, false),
			Writable(p.Payer, true),
			Readonly(crypto.SystemProgramID, false),
		},
		Data: w.Bytes(),
	}, nil
}

type AddAuthorityPayload struct {
	Swig         crypto.PublicKey
	Payer        crypto.PublicKey
	Authority    crypto.PublicKey
	ActingRoleID uint32
	NewAuthority authority.Config
	StartSlot    uint64
	EndSlot      uint64
	Actions      []swigstate.Action
}

// NewAddAuthorityV1 adds a role, signed by an ed25519 authority of ActingRoleID
func NewAddAuthorityV1(p AddAuthorityPayload) (Instruction, error) {
	accounts := managementAccounts(p.Swig, p.Payer, p.Authority)
	authPayload, err := ed25519Payload(len(accounts) - 1)
	if err != nil {
		return Instruction{}, err
	}
	w := layout.NewWriter(64 + len(p.NewAuthority.Data))
	w.U16(uint16(AddAuthorityV1))
	w.U32(p.ActingRoleID)
	if err = appendRoleBody(w, p.NewAuthority, p.StartSlot, p.EndSlot, p.Actions); err != nil {
		return Instruction{}, err
	}
	w.Raw(authPayload)
	return Instruction{ProgramID: crypto.SwigProgramID, Accounts: accounts, Data: w.Bytes()}, nil
}

type RemoveAuthorityPayload struct {
	Swig         crypto.PublicKey
	Payer        crypto.PublicKey
	Authority    crypto.PublicKey
	ActingRoleID uint32
	RemoveRoleID uint32
}

func NewRemoveAuthorityV1(p RemoveAuthorityPayload) (Instruction, error) {
	accounts := managementAccounts(p.Swig, p.Payer, p.Authority)
	authPayload, err := ed25519Payload(len(accounts) - 1)
	if err != nil {
		return Instruction{}, err
	}
	w := layout.NewWriter(12 + len(authPayload))
	w.U16(uint16(RemoveAuthorityV1))
	w.U16(uint16(len(authPayload)))
	w.U32(p.ActingRoleID)
	w.U32(p.RemoveRoleID)
	w.Raw(authPayload)
	return Instruction{ProgramID: crypto.SwigProgramID, Accounts: accounts, Data: w.Bytes()}, nil
}

type ReplaceAuthorityPayload struct {
	Swig          crypto.PublicKey
	Payer         crypto.PublicKey
	Authority     crypto.PublicKey
	ActingRoleID  uint32
	ReplaceRoleID uint32
	NewAuthority  authority.Config
	StartSlot     uint64
	EndSlot       uint64
	Actions       []swigstate.Action
}

func NewReplaceAuthorityV1(p ReplaceAuthorityPayload) (Instruction, error) {
	accounts := managementAccounts(p.Swig, p.Payer, p.Authority)
	authPayload, err := ed25519Payload(len(accounts) - 1)
	if err != nil {
		return Instruction{}, err
	}
	w := layout.NewWriter(64 + len(p.NewAuthority.Data))
	w.U16(uint16(ReplaceAuthorityV1))
	w.U32(p.ActingRoleID)
	w.U32(p.ReplaceRoleID)
	if err = appendRoleBody(w, p.NewAuthority, p.StartSlot, p.EndSlot, p.Actions); err != nil {
		return Instruction{}, err
	}
	w.Raw(authPayload)
	return Instruction{ProgramID: crypto.SwigProgramID, Accounts: accounts, Data: w.Bytes()}, nil
}

type SignPayload struct {
	Swig         crypto.PublicKey
	Payer        crypto.PublicKey
	Authority    crypto.PublicKey
	RoleID       uint32
	Instructions []Instruction
}

// NewSignV1 wraps inner instructions to be executed with the swig account as signer
func NewSignV1(p SignPayload) (Instruction, error) {
	accounts := []AccountMeta{
		Writable(p.Swig, false),
		Writable(p.Payer, true),
		Readonly(p.Authority, true),
	}
	authPayload, err := ed25519Payload(len(accounts) - 1)
	if err != nil {
		return Instruction{}, err
	}
	accounts, compact, err := Compact(p.Swig, accounts, p.Instructions)
	if err != nil {
		return Instruction{}, err
	}
	ixPayload, err := EncodeCompact(compact)
	if err != nil {
		return Instruction{}, err
	}
	if len(ixPayload) > math.MaxUint16 {
		return Instruction{}, fmt.Errorf("%w: instruction payload %d bytes", ErrPayloadTooLarge, len(ixPayload))
	}
	w := layout.NewWriter(8 + len(ixPayload) + len(authPayload))
	w.U16(uint16(SignV1))
	w.U16(uint16(len(ixPayload)))
	w.U32(p.RoleID)
	w.Raw(ixPayload)
	w.Raw(authPayload)
	return Instruction{ProgramID: crypto.SwigProgramID, Accounts: accounts, Data: w.Bytes()}, nil
}
