package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/anyproto/swig-sanity/swig/authority"
	"github.com/anyproto/swig-sanity/swig/swiginstruction"
	"github.com/anyproto/swig-sanity/swig/swigstate"
)

var errUnknownFormat = errors.New("neither a swig account nor a swig instruction")

type authorityView struct {
	Type     authority.Type `yaml:"type"`
	Identity string         `yaml:"identity"`
}

type roleView struct {
	ID        int           `yaml:"id"`
	Authority authorityView `yaml:"authority"`
	StartSlot uint64        `yaml:"startSlot,omitempty"`
	EndSlot   uint64        `yaml:"endSlot,omitempty"`
	Actions   []string      `yaml:"actions"`
}

type swigView struct {
	Kind  string     `yaml:"kind"`
	ID    string     `yaml:"id"`
	Bump  uint8      `yaml:"bump"`
	Roles []roleView `yaml:"roles"`
}

type instructionView struct {
	Kind        string         `yaml:"kind"`
	ActingRole  *uint32        `yaml:"actingRole,omitempty"`
	TargetRole  *uint32        `yaml:"targetRole,omitempty"`
	Authority   *authorityView `yaml:"authority,omitempty"`
	Actions     []string       `yaml:"actions,omitempty"`
	Inner       []string       `yaml:"inner,omitempty"`
	AuthPayload string         `yaml:"authorityPayload,omitempty"`
	Size        int            `yaml:"size"`
}

func viewAuthority(cfg authority.Config) *authorityView {
	id, err := cfg.Identity()
	if err != nil {
		id = err.Error()
	}
	return &authorityView{Type: cfg.Type, Identity: id}
}

func viewAction(a swigstate.Action) string {
	switch v := a.(type) {
	case swigstate.Sol:
		return fmt.Sprintf("%s %s", v.Kind(), viewLimit(v.Limit))
	case swigstate.Token:
		return fmt.Sprintf("%s %s %s", v.Kind(), v.Key, viewLimit(v.Limit))
	case swigstate.Tokens:
		return fmt.Sprintf("%s %s", v.Kind(), viewLimit(v.Limit))
	case swigstate.Program:
		return fmt.Sprintf("%s %s", v.Kind(), v.Key)
	}
	return a.Kind().String()
}

func viewLimit(l swigstate.Limit) string {
	switch v := l.(type) {
	case swigstate.Manage:
		return fmt.Sprintf("manage(%d)", v.Amount)
	case swigstate.Temporal:
		return fmt.Sprintf("temporal(%d/%d slots)", v.Amount, v.Window)
	}
	return "unlimited"
}

func viewActions(actions []swigstate.Action) []string {
	res := make([]string, 0, len(actions))
	for _, a := range actions {
		res = append(res, viewAction(a))
	}
	return res
}

func viewSwig(s swigstate.Swig) swigView {
	v := swigView{Kind: "swig", ID: fmt.Sprintf("%x", s.ID[:]), Bump: s.Bump}
	for i, r := range s.Roles {
		v.Roles = append(v.Roles, roleView{
			ID:        i,
			Authority: *viewAuthority(r.Authority()),
			StartSlot: r.StartSlot,
			EndSlot:   r.EndSlot,
			Actions:   viewActions(r.Actions),
		})
	}
	return v
}

func viewInstruction(d swiginstruction.Decoded, size int) instructionView {
	v := instructionView{Kind: d.Discriminator().String(), Size: size}
	switch ix := d.(type) {
	case swiginstruction.CreateV1Data:
		v.Authority = viewAuthority(ix.Authority)
	case swiginstruction.AddAuthorityV1Data:
		v.ActingRole = &ix.ActingRoleID
		v.Authority = viewAuthority(ix.NewAuthority)
		v.Actions = viewActions(ix.Actions)
		v.AuthPayload = fmt.Sprintf("%x", ix.AuthorityPayload)
	case swiginstruction.RemoveAuthorityV1Data:
		v.ActingRole = &ix.ActingRoleID
		v.TargetRole = &ix.RemoveRoleID
		v.AuthPayload = fmt.Sprintf("%x", ix.AuthorityPayload)
	case swiginstruction.ReplaceAuthorityV1Data:
		v.ActingRole = &ix.ActingRoleID
		v.TargetRole = &ix.ReplaceRoleID
		v.Authority = viewAuthority(ix.NewAuthority)
		v.Actions = viewActions(ix.Actions)
		v.AuthPayload = fmt.Sprintf("%x", ix.AuthorityPayload)
	case swiginstruction.SignV1Data:
		v.ActingRole = &ix.RoleID
		for _, inner := range ix.Instructions {
			v.Inner = append(v.Inner, fmt.Sprintf("program #%d accounts %v data %x", inner.ProgramIDIndex, inner.Accounts, inner.Data))
		}
		v.AuthPayload = fmt.Sprintf("%x", ix.AuthorityPayload)
	}
	return v
}

// inspect renders fixture bytes as yaml, trying the account layout first
func inspect(data []byte) ([]byte, error) {
	if s, err := swigstate.Decode(data); err == nil {
		return yaml.Marshal(viewSwig(s))
	}
	if d, err := swiginstruction.Decode(data); err == nil {
		return yaml.Marshal(viewInstruction(d, len(data)))
	}
	return nil, errUnknownFormat
}
