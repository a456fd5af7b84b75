// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pls client.
package types

import (
	"fmt"
	"strings"
)

// Action names an endpoint of the personal number registry.
type Action string

const (
	ActionIsValid      Action = "isvalid"
	ActionIsRegistered Action = "isregistered"
	ActionGender       Action = "gender"
	ActionAge          Action = "age"
	ActionListAll      Action = "listall"
	ActionListByGroups Action = "listbygroups"
)

// Actions lists every action in lookup order. FindAction in the client
// package matches URLs against this order, so isvalid must precede
// isregistered and listall must precede listbygroups.
var Actions = []Action{
	ActionIsValid,
	ActionIsRegistered,
	ActionGender,
	ActionAge,
	ActionListAll,
	ActionListByGroups,
}

// ParseAction returns the Action named by s.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid action %q (choose from %s)", s, strings.Join(ActionNames(), ", "))
}

// ActionNames returns the action names as strings, in lookup order.
func ActionNames() []string {
	names := make([]string, len(Actions))
	for i, a := range Actions {
		names[i] = string(a)
	}
	return names
}

// RequiresPnum reports whether the action operates on a single personal number.
func (a Action) RequiresPnum() bool {
	switch a {
	case ActionIsValid, ActionIsRegistered, ActionGender, ActionAge:
		return true
	}
	return false
}

// IsListing reports whether the action returns aggregate data over the whole data set.
func (a Action) IsListing() bool {
	return a == ActionListAll || a == ActionListByGroups
}

// Request is a single lookup as given on the command line.
type Request struct {
	Action  Action `json:"action" yaml:"action"`
	Pnum    string `json:"pnum,omitempty" yaml:"pnum,omitempty"`
	Save    bool   `json:"save" yaml:"save"`
	Verbose bool   `json:"verbose" yaml:"verbose"`
}

// Validate checks the pnum contract: actions on a single personal number
// need one, listing actions accept none.
func (r Request) Validate() error {
	if r.Action.RequiresPnum() && r.Pnum == "" {
		return fmt.Errorf("Action '%s' requires a personal number.\nUse optional argument '-p', '--pnum' followed by a personal number.", r.Action)
	}
	if !r.Action.RequiresPnum() && r.Pnum != "" {
		return fmt.Errorf("Action '%s' cannot be used with optional argument '-p', '--pnum'.", r.Action)
	}
	return nil
}
