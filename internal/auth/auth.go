// Package auth decides which sending processes a node accepts messages from.
//
// It only checks membership; it makes no protocol decisions.
package auth

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("auth: unauthorized")

// Validator validates the process id carried by an incoming message.
type Validator interface {
	Validate(processID string) error
}

// PeerSet admits a fixed set of process ids.
type PeerSet map[string]struct{}

func NewPeerSet(ids ...string) PeerSet {
	s := make(PeerSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s PeerSet) Validate(processID string) error {
	if _, ok := s[processID]; !ok {
		return fmt.Errorf("%w: process %q", ErrUnauthorized, processID)
	}
	return nil
}

// FuncValidator adapts a function into a Validator.
type FuncValidator func(processID string) error

func (f FuncValidator) Validate(processID string) error {
	return f(processID)
}

// AllowAll admits every process.
var AllowAll Validator = FuncValidator(func(string) error { return nil })
