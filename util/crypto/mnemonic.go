package crypto

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/anyproto/go-slip10"
	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidWordCount = errors.New("error invalid word count for mnemonic")
	ErrInvalidMnemonic  = errors.New("error invalid mnemonic")
)

// https://github.com/satoshilabs/slips/blob/master/slip-0044.md
// solana wallets derive m/44'/501'/index'/0'
const solanaAccountPrefix = "m/44'/501'"

type Mnemonic string

// NewMnemonic returns a random mnemonic with the given number of words
func NewMnemonic(wordCount int) (Mnemonic, error) {
	var size int
	switch wordCount {
	case 12:
		size = 128
	case 15:
		size = 160
	case 18:
		size = 192
	case 21:
		size = 224
	case 24:
		size = 256
	default:
		return "", ErrInvalidWordCount
	}
	entropy, err := bip39.NewEntropy(size)
	if err != nil {
		return "", err
	}
	m, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", err
	}
	return Mnemonic(m), nil
}

func (m Mnemonic) Seed() ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(string(m), "")
	if err != nil {
		if errors.Is(err, bip39.ErrInvalidMnemonic) {
			return nil, ErrInvalidMnemonic
		}
		return nil, err
	}
	return seed, nil
}

// DeriveKey derives the solana keypair at m/44'/501'/index'/0'
func (m Mnemonic) DeriveKey(index uint32) (PrivKey, error) {
	seed, err := m.Seed()
	if err != nil {
		return PrivKey{}, err
	}
	return DeriveKeyFromSeed(seed, index)
}

func DeriveKeyFromSeed(seed []byte, index uint32) (PrivKey, error) {
	prefixNode, err := slip10.DeriveForPath(solanaAccountPrefix, seed)
	if err != nil {
		return PrivKey{}, err
	}
	// m/44'/501'/index'
	accountNode, err := prefixNode.Derive(slip10.FirstHardenedIndex + index)
	if err != nil {
		return PrivKey{}, err
	}
	// m/44'/501'/index'/0'
	node, err := accountNode.Derive(slip10.FirstHardenedIndex)
	if err != nil {
		return PrivKey{}, err
	}
	return NewPrivKeyFromSeed(node.RawSeed())
}

// PrivKey is an ed25519 signing key of a solana account
type PrivKey struct {
	key ed25519.PrivateKey
}

func NewPrivKeyFromSeed(seed []byte) (PrivKey, error) {
	if len(seed) != ed25519.SeedSize {
		return PrivKey{}, fmt.Errorf("%w: seed %d", ErrIncorrectKeyLength, len(seed))
	}
	return PrivKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

func (k PrivKey) PublicKey() PublicKey {
	var pk PublicKey
	copy(pk[:], k.key[ed25519.PrivateKeySize-ed25519.PublicKeySize:])
	return pk
}

func (k PrivKey) Sign(msg []byte) []byte {
	return ed25519.Sign(k.key, msg)
}
