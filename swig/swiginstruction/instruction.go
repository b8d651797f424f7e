// Package swiginstruction builds and parses swig program instructions.
package swiginstruction

import (
	"errors"
	"fmt"
	"math"

	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/swig/swigstate"
	"github.com/anyproto/swig-sanity/util/crypto"
	"github.com/anyproto/swig-sanity/util/layout"
)

var (
	ErrUnknownDiscriminator = errors.New("unknown instruction discriminator")
	ErrTooManyAccounts      = errors.New("too many accounts")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrTrailingData         = errors.New("trailing instruction data")
)

// Discriminator is the u16 instruction tag leading the instruction data
type Discriminator uint16

const (
	CreateV1 Discriminator = iota
	AddAuthorityV1
	RemoveAuthorityV1
	ReplaceAuthorityV1
	SignV1
)

var discriminatorNames = [...]string{"CreateV1", "AddAuthorityV1", "RemoveAuthorityV1", "ReplaceAuthorityV1", "SignV1"}

func (d Discriminator) String() string {
	if int(d) < len(discriminatorNames) {
		return discriminatorNames[d]
	}
	return fmt.Sprintf("Discriminator(%d)", uint16(d))
}

type AccountMeta struct {
	PublicKey  crypto.PublicKey
	IsSigner   bool
	IsWritable bool
}

func Writable(pk crypto.PublicKey, signer bool) AccountMeta {
	return AccountMeta{PublicKey: pk, IsSigner: signer, IsWritable: true}
}

func Readonly(pk crypto.PublicKey, signer bool) AccountMeta {
	return AccountMeta{PublicKey: pk, IsSigner: signer}
}

type Instruction struct {
	ProgramID crypto.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// Discriminator returns the tag of swig instruction data
func (ix Instruction) Discriminator() (Discriminator, error) {
	d, err := layout.NewReader(ix.Data).U16()
	return Discriminator(d), err
}

// ed25519Payload is the authority payload of an ed25519 acting authority:
// the index of the authority account in the instruction accounts
func ed25519Payload(authorityIdx int) ([]byte, error) {
	if authorityIdx > math.MaxUint8 {
		return nil, fmt.Errorf("%w: authority index %d", ErrTooManyAccounts, authorityIdx)
	}
	return []byte{byte(authorityIdx)}, nil
}

// managementAccounts are shared by add, remove and replace authority
func managementAccounts(swig, payer, acting crypto.PublicKey) []AccountMeta {
	return []AccountMeta{
		Writable(swig, false),
		Writable(payer, true),
		Readonly(crypto.SystemProgramID, false),
		Readonly(acting, true),
	}
}

// appendRoleBody writes the new authority and its actions the way add and replace share them
func appendRoleBody(w *layout.Writer, cfg authority.Config, startSlot, endSlot uint64, actions []swigstate.Action) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	encoded, err := swigstate.EncodeActions(actions)
	if err != nil {
		return err
	}
	if len(cfg.Data) > math.MaxUint16 || len(encoded) > math.MaxUint16 {
		return fmt.Errorf("%w: authority %d bytes, actions %d bytes", ErrPayloadTooLarge, len(cfg.Data), len(encoded))
	}
	w.U16(uint16(cfg.Type))
	w.U16(uint16(len(cfg.Data)))
	w.U16(uint16(len(encoded)))
	w.U64(startSlot)
	w.U64(endSlot)
	w.Raw(cfg.Data)
	w.Raw(encoded)
	return nil
}

type roleBody struct {
	authority authority.Config
	startSlot uint64
	endSlot   uint64
	actions   []swigstate.Action
}

func readRoleBody(r *layout.Reader) (b roleBody, err error) {
	tp, err := r.U16()
	if err != nil {
		return
	}
	b.authority.Type = authority.Type(tp)
	dataLen, err := r.U16()
	if err != nil {
		return
	}
	actionsLen, err := r.U16()
	if err != nil {
		return
	}
	if b.startSlot, err = r.U64(); err != nil {
		return
	}
	if b.endSlot, err = r.U64(); err != nil {
		return
	}
	if b.authority.Data, err = r.Raw(int(dataLen)); err != nil {
		return
	}
	if err = b.authority.Validate(); err != nil {
		return
	}
	actionsRaw, err := r.Raw(int(actionsLen))
	if err != nil {
		return
	}
	ar := layout.NewReader(actionsRaw)
	if b.actions, err = swigstate.ReadActions(ar); err != nil {
		return
	}
	if ar.Remaining() != 0 {
		return b, fmt.Errorf("%w: %d bytes after actions", ErrTrailingData, ar.Remaining())
	}
	return b, nil
}
