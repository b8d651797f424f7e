package swigstate

import (
	"fmt"

	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/util/crypto"
	"github.com/anyproto/swig-sanity/util/layout"
)

// Role pairs an authority with the ordered actions it is allowed to take
type Role struct {
	AuthorityType authority.Type
	AuthorityData []byte
	StartSlot     uint64
	EndSlot       uint64
	Actions       []Action
}

// NewRole copies its inputs so later changes to them don't leak into the role
func NewRole(cfg authority.Config, startSlot, endSlot uint64, actions ...Action) Role {
	return Role{
		AuthorityType: cfg.Type,
		AuthorityData: append([]byte(nil), cfg.Data...),
		StartSlot:     startSlot,
		EndSlot:       endSlot,
		Actions:       append([]Action(nil), actions...),
	}
}

func (r Role) Authority() authority.Config {
	return authority.Config{Type: r.AuthorityType, Data: r.AuthorityData}
}

// ActiveAt reports whether the role may act at slot; zero EndSlot means no expiry
func (r Role) ActiveAt(slot uint64) bool {
	if slot < r.StartSlot {
		return false
	}
	return r.EndSlot == 0 || slot < r.EndSlot
}

func (r Role) IsRoot() bool {
	for _, a := range r.Actions {
		if _, ok := a.(All); ok {
			return true
		}
	}
	return false
}

func (r Role) CanManageAuthority() bool {
	for _, a := range r.Actions {
		switch a.(type) {
		case All, ManageAuthority:
			return true
		}
	}
	return false
}

func (r Role) CanUseProgram(program crypto.PublicKey) bool {
	for _, a := range r.Actions {
		switch v := a.(type) {
		case All:
			return true
		case Program:
			if v.Key == program {
				return true
			}
		}
	}
	return false
}

// Spend summarizes what a role may spend of one asset
type Spend struct {
	Allowed   bool
	Unlimited bool
	// Amount is the largest capped amount; meaningful when Allowed and not Unlimited
	Amount uint64
}

func (s *Spend) add(l Limit) {
	s.Allowed = true
	switch v := l.(type) {
	case Unlimited:
		s.Unlimited = true
	case Manage:
		s.Amount = max(s.Amount, v.Amount)
	case Temporal:
		s.Amount = max(s.Amount, v.Amount)
	}
}

// TokenSpendLimit returns the spend allowance for the token mint
func (r Role) TokenSpendLimit(mint crypto.PublicKey) (s Spend) {
	for _, a := range r.Actions {
		switch v := a.(type) {
		case All:
			return Spend{Allowed: true, Unlimited: true}
		case Tokens:
			s.add(v.Limit)
		case Token:
			if v.Key == mint {
				s.add(v.Limit)
			}
		}
	}
	return
}

// SolSpendLimit returns the lamport spend allowance
func (r Role) SolSpendLimit() (s Spend) {
	for _, a := range r.Actions {
		switch v := a.(type) {
		case All:
			return Spend{Allowed: true, Unlimited: true}
		case Sol:
			s.add(v.Limit)
		}
	}
	return
}

// role layout: size u64, type u16, start u64, end u64, data u32+bytes, actions u32+actions
const roleHeaderLen = 8 + 2 + 8 + 8

// AppendRole encodes r, filling the leading size field with the encoded length
func AppendRole(w *layout.Writer, r Role) error {
	if err := r.Authority().Validate(); err != nil {
		return err
	}
	start := w.Len()
	w.U64(0)
	w.U16(uint16(r.AuthorityType))
	w.U64(r.StartSlot)
	w.U64(r.EndSlot)
	if err := w.Bytes32(r.AuthorityData); err != nil {
		return err
	}
	if err := AppendActions(w, r.Actions); err != nil {
		return err
	}
	w.PutU64At(start, uint64(w.Len()-start))
	return nil
}

// EncodeRole returns the encoded role
func EncodeRole(r Role) ([]byte, error) {
	w := layout.NewWriter(roleHeaderLen + 4 + len(r.AuthorityData) + 4 + len(r.Actions)*42)
	if err := AppendRole(w, r); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ReadRole decodes a role and checks its size field against the bytes consumed
func ReadRole(rd *layout.Reader) (r Role, err error) {
	start := rd.Offset()
	size, err := rd.U64()
	if err != nil {
		return
	}
	tp, err := rd.U16()
	if err != nil {
		return
	}
	r.AuthorityType = authority.Type(tp)
	if r.StartSlot, err = rd.U64(); err != nil {
		return
	}
	if r.EndSlot, err = rd.U64(); err != nil {
		return
	}
	if r.AuthorityData, err = rd.Bytes32(); err != nil {
		return
	}
	if r.Actions, err = ReadActions(rd); err != nil {
		return
	}
	if consumed := uint64(rd.Offset() - start); consumed != size {
		return r, fmt.Errorf("%w: size field %d, encoded %d", ErrRoleSizeMismatch, size, consumed)
	}
	if err = r.Authority().Validate(); err != nil {
		return
	}
	return r, nil
}
