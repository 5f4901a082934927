// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package notifier delivers out-of-band messages raised by the service
// layer, typically on transaction rollback.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Kind int

const (
	KindUnknownDestination Kind = iota
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUnknownDestination:
		return "unknown destination"
	case KindUnavailable:
		return "notifier unavailable"
	default:
		return "unknown error"
	}
}

type Error struct {
	Kind   Kind
	Detail string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Notifier sends a message to a named destination.
type Notifier interface {
	Notify(ctx context.Context, to, message string) error
}

// Nop discards every message. It is the default when no notifier is
// configured.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error { return nil }

// Envelope is the wire form of a notification.
type Envelope struct {
	ID     uuid.UUID `json:"id"`
	To     string    `json:"to"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// NewEnvelope stamps a message with a fresh id and the current time.
func NewEnvelope(to, body string) Envelope {
	return Envelope{ID: uuid.New(), To: to, Body: body, SentAt: time.Now().UTC()}
}
