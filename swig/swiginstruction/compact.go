package swiginstruction

import (
	"fmt"
	"math"

	"github.com/anyproto/swig-sanity/util/crypto"
	"github.com/anyproto/swig-sanity/util/layout"
)

// CompactInstruction is an inner instruction referencing accounts by index
type CompactInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Compact merges the accounts of inner instructions into outer and replaces
// them with indexes. Every inner program id is appended readonly, accounts
// already present are referenced by their last position, and the swig
// account never keeps its signer flag.
func Compact(swig crypto.PublicKey, outer []AccountMeta, inner []Instruction) ([]AccountMeta, []CompactInstruction, error) {
	accounts := append([]AccountMeta(nil), outer...)
	index := make(map[crypto.PublicKey]int, len(accounts))
	for i, a := range accounts {
		index[a.PublicKey] = i
	}
	compact := make([]CompactInstruction, 0, len(inner))
	for _, ix := range inner {
		programIdx := len(accounts)
		accounts = append(accounts, Readonly(ix.ProgramID, false))
		cix := CompactInstruction{Data: ix.Data}
		for _, meta := range ix.Accounts {
			if meta.PublicKey == swig {
				meta.IsSigner = false
			}
			idx, ok := index[meta.PublicKey]
			if !ok {
				idx = len(accounts)
				index[meta.PublicKey] = idx
				accounts = append(accounts, meta)
			}
			if idx > math.MaxUint8 {
				return nil, nil, fmt.Errorf("%w: account index %d", ErrTooManyAccounts, idx)
			}
			cix.Accounts = append(cix.Accounts, uint8(idx))
		}
		if programIdx > math.MaxUint8 {
			return nil, nil, fmt.Errorf("%w: program index %d", ErrTooManyAccounts, programIdx)
		}
		cix.ProgramIDIndex = uint8(programIdx)
		compact = append(compact, cix)
	}
	return accounts, compact, nil
}

// EncodeCompact writes u8 instruction count, then per instruction the program
// index, u8-prefixed account indexes and u16-prefixed data
func EncodeCompact(ixs []CompactInstruction) ([]byte, error) {
	if len(ixs) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %d inner instructions", ErrPayloadTooLarge, len(ixs))
	}
	w := layout.NewWriter(1 + len(ixs)*8)
	w.U8(uint8(len(ixs)))
	for _, ix := range ixs {
		if len(ix.Accounts) > math.MaxUint8 {
			return nil, fmt.Errorf("%w: %d accounts in inner instruction", ErrTooManyAccounts, len(ix.Accounts))
		}
		w.U8(ix.ProgramIDIndex)
		w.U8(uint8(len(ix.Accounts)))
		w.Raw(ix.Accounts)
		if err := w.Bytes16(ix.Data); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func readCompact(r *layout.Reader) ([]CompactInstruction, error) {
	n, err := r.U8()
	if err != nil {
		return nil, err
	}
	ixs := make([]CompactInstruction, 0, n)
	for i := 0; i < int(n); i++ {
		var ix CompactInstruction
		if ix.ProgramIDIndex, err = r.U8(); err != nil {
			return nil, err
		}
		cnt, err := r.U8()
		if err != nil {
			return nil, err
		}
		if ix.Accounts, err = r.Raw(int(cnt)); err != nil {
			return nil, err
		}
		if ix.Data, err = r.Bytes16(); err != nil {
			return nil, err
		}
		ixs = append(ixs, ix)
	}
	return ixs, nil
}
