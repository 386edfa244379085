// Package web drives a collection game over a websocket for the browser
// client. Each connection owns its own collection.State.
package web

import (
	"fmt"

	"github.com/tomz197/jardin/internal/celestial"
	"github.com/tomz197/jardin/internal/collection"
)

// Client message types.
const (
	TypeDiscover = "discover"
	TypeCentral  = "central"
	TypeClear    = "clear"
)

// Server message types.
const (
	TypeCatalog  = "catalog"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
	TypeNotice   = "notice"
	TypeShutdown = "shutdown"
)

// Error codes sent in ServerMessage.Error.
const (
	ErrCodeInvalidTarget = "invalid_target"
	ErrCodeBadMessage    = "bad_message"
)

// ClientMessage is a click forwarded by the browser.
type ClientMessage struct {
	Type string `json:"type" jsonschema:"enum=discover,enum=central,enum=clear"`
	ID   *int   `json:"id,omitempty" jsonschema:"description=Body id for discover"`
}

// BodyDTO is the public part of a catalog body. Payloads are only sent once
// the body is selected.
type BodyDTO struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	OrbitalRadius float64 `json:"orbitalRadius"`
	DisplaySize   float64 `json:"displaySize"`
	AngularSpeed  float64 `json:"angularSpeed" jsonschema:"description=Radians per tick at 60 ticks per second"`
	Color         string  `json:"color"`
}

// SelectedDTO is the info panel content.
type SelectedDTO struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Payload string `json:"payload"`
}

// ServerMessage is everything the server sends. Type decides which fields are set.
type ServerMessage struct {
	Type     string               `json:"type" jsonschema:"enum=catalog,enum=snapshot,enum=error,enum=notice,enum=shutdown"`
	Catalog  []BodyDTO            `json:"catalog,omitempty"`
	Snapshot *collection.Snapshot `json:"snapshot,omitempty"`
	Selected *SelectedDTO         `json:"selected,omitempty"`
	Secret   string               `json:"secret,omitempty" jsonschema:"description=Set once the secret is unlocked"`
	Error    string               `json:"error,omitempty" jsonschema:"enum=invalid_target,enum=bad_message"`
	Notice   string               `json:"notice,omitempty"`
}

// Event converts a client message into a collection event.
func (m ClientMessage) Event() (collection.Event, error) {
	switch m.Type {
	case TypeDiscover:
		if m.ID == nil {
			return collection.Event{}, fmt.Errorf("%w: discover without id", collection.ErrInvalidTarget)
		}
		return collection.SelectBody(*m.ID), nil
	case TypeCentral:
		return collection.Event{Kind: collection.EventCentralBody}, nil
	case TypeClear:
		return collection.Event{Kind: collection.EventClearSelection}, nil
	default:
		return collection.Event{}, fmt.Errorf("unknown message type %q", m.Type)
	}
}

func catalogMessage(reg *celestial.Registry) ServerMessage {
	bodies := reg.All()
	dtos := make([]BodyDTO, len(bodies))
	for i, b := range bodies {
		dtos[i] = BodyDTO{
			ID:            b.ID,
			Name:          b.Name,
			OrbitalRadius: b.OrbitalRadius,
			DisplaySize:   b.DisplaySize,
			AngularSpeed:  b.AngularSpeed,
			Color:         b.Color,
		}
	}
	return ServerMessage{Type: TypeCatalog, Catalog: dtos}
}

func snapshotMessage(reg *celestial.Registry, snap collection.Snapshot) ServerMessage {
	msg := ServerMessage{Type: TypeSnapshot, Snapshot: &snap}
	if snap.SelectedID != nil {
		if b, err := reg.Get(*snap.SelectedID); err == nil {
			msg.Selected = &SelectedDTO{ID: b.ID, Name: b.Name, Payload: b.PayloadText}
		}
	}
	if snap.SecretUnlocked {
		msg.Secret = reg.Secret()
	}
	return msg
}

func errorMessage(code string, snap collection.Snapshot) ServerMessage {
	return ServerMessage{Type: TypeError, Error: code, Snapshot: &snap}
}
