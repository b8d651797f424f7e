package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/sha3"
)

const Secp256k1RawKeySize = 64

var ErrInvalidSecp256k1Key = errors.New("invalid secp256k1 public key")

// NormalizeSecp256k1 parses a compressed (33), prefixed uncompressed (65)
// or raw (64) secp256k1 public key and returns the raw 64-byte x||y form
func NormalizeSecp256k1(pub []byte) ([]byte, error) {
	in := pub
	if len(pub) == Secp256k1RawKeySize {
		in = append([]byte{0x04}, pub...)
	}
	key, err := btcec.ParsePubKey(in, btcec.S256())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecp256k1Key, err)
	}
	return key.SerializeUncompressed()[1:], nil
}

// EthereumAddress returns the 0x-prefixed address of a raw 64-byte secp256k1 key
func EthereumAddress(raw []byte) (string, error) {
	if len(raw) != Secp256k1RawKeySize {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidSecp256k1Key, len(raw))
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(raw)
	return "0x" + hex.EncodeToString(h.Sum(nil)[12:]), nil
}
