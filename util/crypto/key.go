package crypto

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

const PublicKeySize = 32

var (
	ErrIncorrectKeyLength = errors.New("incorrect key length")
	ErrInvalidBase58      = errors.New("invalid base58 string")
)

// PublicKey is a solana account address: 32 raw bytes shown as base58
type PublicKey [PublicKeySize]byte

var (
	// SystemProgramID is the solana system program
	SystemProgramID = PublicKey{}
	// SwigProgramID is the swig wallet program
	SwigProgramID = MustParsePublicKey("swigDk8JezhiAVde8k6NMwxpZfgGm2NNuMe1KYCmUjP")
)

// NewPublicKeyFromBytes copies a 32-byte slice into a PublicKey
func NewPublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, fmt.Errorf("%w: %d", ErrIncorrectKeyLength, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// RepeatedPublicKey returns a key filled with b, the shape used by sanity fixtures
func RepeatedPublicKey(b byte) (pk PublicKey) {
	for i := range pk {
		pk[i] = b
	}
	return
}

func ParsePublicKey(s string) (PublicKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidBase58, err)
	}
	return NewPublicKeyFromBytes(raw)
}

func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) Bytes() []byte {
	return append([]byte(nil), pk[:]...)
}

func (pk PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(pk[:], o[:])
}

func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) (err error) {
	*pk, err = ParsePublicKey(string(text))
	return
}
