package swiginstruction

import (
	"fmt"

	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/swig/swigstate"
	"github.com/anyproto/swig-sanity/util/layout"
)

// Decoded is the parsed data of one swig instruction. Variants: CreateV1Data,
// AddAuthorityV1Data, RemoveAuthorityV1Data, ReplaceAuthorityV1Data, SignV1Data.
type Decoded interface {
	Discriminator() Discriminator
	isDecoded()
}

type CreateV1Data struct {
	ID        [swigstate.IDLen]byte
	Bump      uint8
	Authority authority.Config
	StartSlot uint64
	EndSlot   uint64
}

type AddAuthorityV1Data struct {
	ActingRoleID     uint32
	NewAuthority     authority.Config
	StartSlot        uint64
	EndSlot          uint64
	Actions          []swigstate.Action
	AuthorityPayload []byte
}

type RemoveAuthorityV1Data struct {
	ActingRoleID     uint32
	RemoveRoleID     uint32
	AuthorityPayload []byte
}

type ReplaceAuthorityV1Data struct {
	ActingRoleID     uint32
	ReplaceRoleID    uint32
	NewAuthority     authority.Config
	StartSlot        uint64
	EndSlot          uint64
	Actions          []swigstate.Action
	AuthorityPayload []byte
}

type SignV1Data struct {
	RoleID           uint32
	Instructions     []CompactInstruction
	AuthorityPayload []byte
}

func (CreateV1Data) Discriminator() Discriminator           { return CreateV1 }
func (AddAuthorityV1Data) Discriminator() Discriminator     { return AddAuthorityV1 }
func (RemoveAuthorityV1Data) Discriminator() Discriminator  { return RemoveAuthorityV1 }
func (ReplaceAuthorityV1Data) Discriminator() Discriminator { return ReplaceAuthorityV1 }
func (SignV1Data) Discriminator() Discriminator             { return SignV1 }

func (CreateV1Data) isDecoded()           {}
func (AddAuthorityV1Data) isDecoded()     {}
func (RemoveAuthorityV1Data) isDecoded()  {}
func (ReplaceAuthorityV1Data) isDecoded() {}
func (SignV1Data) isDecoded()             {}

// Decode parses swig instruction data
func Decode(data []byte) (Decoded, error) {
	r := layout.NewReader(data)
	d, err := r.U16()
	if err != nil {
		return nil, err
	}
	var res Decoded
	switch Discriminator(d) {
	case CreateV1:
		res, err = decodeCreate(r)
	case AddAuthorityV1:
		res, err = decodeAddAuthority(r)
	case RemoveAuthorityV1:
		res, err = decodeRemoveAuthority(r)
	case ReplaceAuthorityV1:
		res, err = decodeReplaceAuthority(r)
	case SignV1:
		res, err = decodeSign(r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiscriminator, d)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", Discriminator(d), err)
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("decode %s: %w: %d bytes", Discriminator(d), ErrTrailingData, r.Remaining())
	}
	return res, nil
}

func decodeCreate(r *layout.Reader) (c CreateV1Data, err error) {
	if err = r.Fixed(c.ID[:]); err != nil {
		return
	}
	if c.Bump, err = r.U8(); err != nil {
		return
	}
	tp, err := r.U16()
	if err != nil {
		return
	}
	c.Authority.Type = authority.Type(tp)
	if c.StartSlot, err = r.U64(); err != nil {
		return
	}
	if c.EndSlot, err = r.U64(); err != nil {
		return
	}
	if c.Authority.Data, err = r.Bytes32(); err != nil {
		return
	}
	err = c.Authority.Validate()
	return
}

func decodeAddAuthority(r *layout.Reader) (a AddAuthorityV1Data, err error) {
	if a.ActingRoleID, err = r.U32(); err != nil {
		return
	}
	body, err := readRoleBody(r)
	if err != nil {
		return
	}
	a.NewAuthority, a.StartSlot, a.EndSlot, a.Actions = body.authority, body.startSlot, body.endSlot, body.actions
	a.AuthorityPayload = r.Rest()
	return
}

func decodeRemoveAuthority(r *layout.Reader) (rm RemoveAuthorityV1Data, err error) {
	payloadLen, err := r.U16()
	if err != nil {
		return
	}
	if rm.ActingRoleID, err = r.U32(); err != nil {
		return
	}
	if rm.RemoveRoleID, err = r.U32(); err != nil {
		return
	}
	rm.AuthorityPayload, err = r.Raw(int(payloadLen))
	return
}

func decodeReplaceAuthority(r *layout.Reader) (rp ReplaceAuthorityV1Data, err error) {
	if rp.ActingRoleID, err = r.U32(); err != nil {
		return
	}
	if rp.ReplaceRoleID, err = r.U32(); err != nil {
		return
	}
	body, err := readRoleBody(r)
	if err != nil {
		return
	}
	rp.NewAuthority, rp.StartSlot, rp.EndSlot, rp.Actions = body.authority, body.startSlot, body.endSlot, body.actions
	rp.AuthorityPayload = r.Rest()
	return
}

func decodeSign(r *layout.Reader) (s SignV1Data, err error) {
	payloadLen, err := r.U16()
	if err != nil {
		return
	}
	if s.RoleID, err = r.U32(); err != nil {
		return
	}
	raw, err := r.Raw(int(payloadLen))
	if err != nil {
		return
	}
	cr := layout.NewReader(raw)
	if s.Instructions, err = readCompact(cr); err != nil {
		return
	}
	if cr.Remaining() != 0 {
		return s, fmt.Errorf("%w: %d bytes after inner instructions", ErrTrailingData, cr.Remaining())
	}
	s.AuthorityPayload = r.Rest()
	return
}
