// Package swigstate holds the swig wallet account state: roles, their
// permissions and the binary account layout.
package swigstate

import (
	"errors"
	"fmt"

	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/util/layout"
)

const (
	IDLen = 13
	// AccountDiscriminator is the first byte of a swig account
	AccountDiscriminator uint8 = 1
)

var (
	ErrBadDiscriminator = errors.New("not a swig account")
	ErrRoleSizeMismatch = errors.New("role size mismatch")
	ErrTrailingData     = errors.New("trailing data after swig account")
	ErrRoleNotFound     = errors.New("role not found")
)

// Swig is the state of a swig wallet account. Role ids are indexes into Roles.
type Swig struct {
	ID    [IDLen]byte
	Bump  uint8
	Roles []Role
}

func (s Swig) Role(id uint32) (Role, error) {
	if uint64(id) >= uint64(len(s.Roles)) {
		return Role{}, fmt.Errorf("%w: id %d, %d roles", ErrRoleNotFound, id, len(s.Roles))
	}
	return s.Roles[id], nil
}

// FindRoleByAuthority returns the first role whose authority matches cfg
func (s Swig) FindRoleByAuthority(cfg authority.Config) (id uint32, role Role, ok bool) {
	for i, r := range s.Roles {
		if cfg.Matches(r.AuthorityType, r.AuthorityData) {
			return uint32(i), r, true
		}
	}
	return 0, Role{}, false
}

// Encode serializes the account state
func Encode(s Swig) ([]byte, error) {
	w := layout.NewWriter(1 + IDLen + 1 + 4 + len(s.Roles)*128)
	w.U8(AccountDiscriminator)
	w.Raw(s.ID[:])
	w.U8(s.Bump)
	w.U32(uint32(len(s.Roles)))
	for i, r := range s.Roles {
		if err := AppendRole(w, r); err != nil {
			return nil, fmt.Errorf("role %d: %w", i, err)
		}
	}
	return w.Bytes(), nil
}

// Decode parses bytes produced by Encode; the whole input must be consumed
func Decode(data []byte) (s Swig, err error) {
	rd := layout.NewReader(data)
	disc, err := rd.U8()
	if err != nil {
		return
	}
	if disc != AccountDiscriminator {
		return s, fmt.Errorf("%w: discriminator %d", ErrBadDiscriminator, disc)
	}
	if err = rd.Fixed(s.ID[:]); err != nil {
		return
	}
	if s.Bump, err = rd.U8(); err != nil {
		return
	}
	n, err := rd.U32()
	if err != nil {
		return
	}
	// a role is at least its header plus two empty length prefixes
	if uint64(n)*(roleHeaderLen+8) > uint64(rd.Remaining()) {
		return s, fmt.Errorf("%w: %d roles declared, %d bytes left", layout.ErrUnexpectedEOF, n, rd.Remaining())
	}
	if n > 0 {
		s.Roles = make([]Role, 0, n)
	}
	for i := uint32(0); i < n; i++ {
		r, rerr := ReadRole(rd)
		if rerr != nil {
			return Swig{}, fmt.Errorf("role %d: %w", i, rerr)
		}
		s.Roles = append(s.Roles, r)
	}
	if rd.Remaining() != 0 {
		return Swig{}, fmt.Errorf("%w: %d bytes", ErrTrailingData, rd.Remaining())
	}
	return s, nil
}
