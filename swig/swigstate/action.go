package swigstate

import (
	"errors"
	"fmt"

	"github.com/anyproto/swig-sanity/util/crypto"
	"github.com/anyproto/swig-sanity/util/layout"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownLimit  = errors.New("unknown limit")
)

// ActionKind is the wire tag of an action
type ActionKind uint8

const (
	KindAll ActionKind = iota
	KindManageAuthority
	KindSol
	KindToken
	KindTokens
	KindProgram
)

var actionKindNames = [...]string{"All", "ManageAuthority", "Sol", "Token", "Tokens", "Program"}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is a permission granted to a role. The set of variants is closed:
// All, ManageAuthority, Sol, Token, Tokens and Program.
type Action interface {
	Kind() ActionKind
	isAction()
}

// All grants every permission
type All struct{}

// ManageAuthority allows adding, removing and replacing roles
type ManageAuthority struct{}

// Sol allows spending lamports up to Limit
type Sol struct {
	Limit Limit
}

// Token allows spending the token of mint Key up to Limit
type Token struct {
	Key   crypto.PublicKey
	Limit Limit
}

// Tokens allows spending any token up to Limit
type Tokens struct {
	Limit Limit
}

// Program allows invoking the program Key
type Program struct {
	Key crypto.PublicKey
}

func (All) Kind() ActionKind             { return KindAll }
func (ManageAuthority) Kind() ActionKind { return KindManageAuthority }
func (Sol) Kind() ActionKind             { return KindSol }
func (Token) Kind() ActionKind           { return KindToken }
func (Tokens) Kind() ActionKind          { return KindTokens }
func (Program) Kind() ActionKind         { return KindProgram }

func (All) isAction()             {}
func (ManageAuthority) isAction() {}
func (Sol) isAction()             {}
func (Token) isAction()           {}
func (Tokens) isAction()          {}
func (Program) isAction()         {}

// Limit bounds a spend permission. Variants: Unlimited, Manage, Temporal.
type Limit interface {
	isLimit()
}

type Unlimited struct{}

// Manage caps the total amount
type Manage struct {
	Amount uint64
}

// Temporal caps the amount spent per Window slots
type Temporal struct {
	Amount    uint64
	Window    uint64
	LastReset uint64
}

func (Unlimited) isLimit() {}
func (Manage) isLimit()    {}
func (Temporal) isLimit()  {}

const (
	limitUnlimited uint8 = iota
	limitManage
	limitTemporal
)

// AppendActions writes the u32 action count followed by every action
func AppendActions(w *layout.Writer, actions []Action) error {
	w.U32(uint32(len(actions)))
	for i, a := range actions {
		if err := appendAction(w, a); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	return nil
}

// EncodeActions returns the encoded action list
func EncodeActions(actions []Action) ([]byte, error) {
	w := layout.NewWriter(4 + len(actions)*42)
	if err := AppendActions(w, actions); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func appendAction(w *layout.Writer, a Action) error {
	if a == nil {
		return fmt.Errorf("%w: nil", ErrUnknownAction)
	}
	w.U8(uint8(a.Kind()))
	switch v := a.(type) {
	case All, ManageAuthority:
	case Sol:
		return appendLimit(w, v.Limit)
	case Token:
		w.Raw(v.Key[:])
		return appendLimit(w, v.Limit)
	case Tokens:
		return appendLimit(w, v.Limit)
	case Program:
		w.Raw(v.Key[:])
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
	return nil
}

func appendLimit(w *layout.Writer, l Limit) error {
	switch v := l.(type) {
	case Unlimited:
		w.U8(limitUnlimited)
	case Manage:
		w.U8(limitManage)
		w.U64(v.Amount)
	case Temporal:
		w.U8(limitTemporal)
		w.U64(v.Amount)
		w.U64(v.Window)
		w.U64(v.LastReset)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownLimit, l)
	}
	return nil
}

// ReadActions reads a u32 count followed by that many actions
func ReadActions(r *layout.Reader) ([]Action, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	// every action takes at least one byte
	if int64(n) > int64(r.Remaining()) {
		return nil, fmt.Errorf("%w: %d actions declared, %d bytes left", layout.ErrUnexpectedEOF, n, r.Remaining())
	}
	var actions []Action
	if n > 0 {
		actions = make([]Action, 0, n)
	}
	for i := uint32(0); i < n; i++ {
		a, err := readAction(r)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func readAction(r *layout.Reader) (Action, error) {
	tag, err := r.U8()
	if err != nil {
		return nil, err
	}
	switch ActionKind(tag) {
	case KindAll:
		return All{}, nil
	case KindManageAuthority:
		return ManageAuthority{}, nil
	case KindSol:
		l, err := readLimit(r)
		if err != nil {
			return nil, err
		}
		return Sol{Limit: l}, nil
	case KindToken:
		var t Token
		if err = r.Fixed(t.Key[:]); err != nil {
			return nil, err
		}
		if t.Limit, err = readLimit(r); err != nil {
			return nil, err
		}
		return t, nil
	case KindTokens:
		l, err := readLimit(r)
		if err != nil {
			return nil, err
		}
		return Tokens{Limit: l}, nil
	case KindProgram:
		var p Program
		if err = r.Fixed(p.Key[:]); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: tag %d", ErrUnknownAction, tag)
}

func readLimit(r *layout.Reader) (Limit, error) {
	tag, err := r.U8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case limitUnlimited:
		return Unlimited{}, nil
	case limitManage:
		amount, err := r.U64()
		if err != nil {
			return nil, err
		}
		return Manage{Amount: amount}, nil
	case limitTemporal:
		var t Temporal
		if t.Amount, err = r.U64(); err != nil {
			return nil, err
		}
		if t.Window, err = r.U64(); err != nil {
			return nil, err
		}
		if t.LastReset, err = r.U64(); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: tag %d", ErrUnknownLimit, tag)
}
