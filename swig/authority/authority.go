// Package authority describes the identities that can act on a swig wallet.
package authority

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anyproto/swig-sanity/util/crypto"
)

var (
	ErrUnknownType          = errors.New("unknown authority type")
	ErrInvalidAuthorityData = errors.New("invalid authority data")
)

// Type is the authority type tag, u16 on the wire
type Type uint16

const (
	None Type = iota
	Ed25519
	Ed25519Session
	Secp256k1
	Secp256k1Session
)

var typeNames = map[Type]string{
	None:             "None",
	Ed25519:          "Ed25519",
	Ed25519Session:   "Ed25519Session",
	Secp256k1:        "Secp256k1",
	Secp256k1Session: "Secp256k1Session",
}

// data length required by each type
var dataLen = map[Type]int{
	Ed25519:          32,
	Ed25519Session:   80,
	Secp256k1:        64,
	Secp256k1Session: 112,
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint16(t))
}

func (t Type) Valid() bool {
	_, ok := dataLen[t]
	return ok
}

// DataLen returns the length of authority data expected for t, or 0 for unknown types
func (t Type) DataLen() int {
	return dataLen[t]
}

func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) (err error) {
	*t, err = ParseType(string(text))
	return
}

// Config is an authority identity: its type and raw data
type Config struct {
	Type Type
	Data []byte
}

// NewEd25519Config returns the config of a plain ed25519 authority
func NewEd25519Config(pk crypto.PublicKey) Config {
	return Config{Type: Ed25519, Data: pk.Bytes()}
}

// NewSecp256k1Config normalizes pub to the raw 64-byte form
func NewSecp256k1Config(pub []byte) (Config, error) {
	raw, err := crypto.NormalizeSecp256k1(pub)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidAuthorityData, err)
	}
	return Config{Type: Secp256k1, Data: raw}, nil
}

// Validate checks the data length against the type
func (c Config) Validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownType, c.Type)
	}
	if want := c.Type.DataLen(); len(c.Data) != want {
		return fmt.Errorf("%w: %s wants %d bytes, got %d", ErrInvalidAuthorityData, c.Type, want, len(c.Data))
	}
	return nil
}

// Identity returns a printable identity of the authority
func (c Config) Identity() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	switch c.Type {
	case Ed25519, Ed25519Session:
		pk, err := crypto.NewPublicKeyFromBytes(c.Data[:crypto.PublicKeySize])
		if err != nil {
			return "", err
		}
		return pk.String(), nil
	default:
		return crypto.EthereumAddress(c.Data[:crypto.Secp256k1RawKeySize])
	}
}

// Matches reports whether data identifies the same signer as c
// session authorities are matched by their root key only
func (c Config) Matches(t Type, data []byte) bool {
	if t != c.Type || len(data) != len(c.Data) {
		return false
	}
	n := len(data)
	switch t {
	case Ed25519Session:
		n = crypto.PublicKeySize
	case Secp256k1Session:
		n = crypto.Secp256k1RawKeySize
	}
	return string(data[:n]) == string(c.Data[:n])
}
