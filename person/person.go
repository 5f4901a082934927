// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package person defines the registry's domain entity and its field-level
// validation rules.
package person

import (
	"fmt"
	"time"
)

// ID identifies a registered person. Assigned by the store on insert.
type ID int64

// DomainError is a domain-rule violation. Comparable so callers can match
// on the sentinel values below.
type DomainError string

func (e DomainError) Error() string { return string(e) }

const (
	// ErrAlreadyDead reports an attempt to record a death date for a
	// person who already has one.
	ErrAlreadyDead DomainError = "person is already dead"

	// ErrDiedBeforeBirth reports a death date earlier than the birth date.
	ErrDiedBeforeBirth DomainError = "death date precedes birth date"
)

// Person is the registry entity.
type Person struct {
	Name      string
	BirthDate time.Time
	DeathDate *time.Time // nil while alive
	Data      string     // free-form note
}

// New constructs a Person. death may be nil.
func New(name string, birth time.Time, death *time.Time, data string) Person {
	return Person{Name: name, BirthDate: birth, DeathDate: death, Data: data}
}

// DeadAt records the death date d.
// Fails with ErrAlreadyDead if a death date is already present, and with
// ErrDiedBeforeBirth if d precedes the birth date.
func (p *Person) DeadAt(d time.Time) error {
	if p.DeathDate != nil {
		return ErrAlreadyDead
	}
	if d.Before(p.BirthDate) {
		return ErrDiedBeforeBirth
	}
	p.DeathDate = &d
	return nil
}

// String renders the person for logs and the demo binary.
func (p Person) String() string {
	death := "-"
	if p.DeathDate != nil {
		death = p.DeathDate.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s (%s — %s) %s", p.Name, p.BirthDate.Format(time.DateOnly), death, p.Data)
}

// Date builds a midnight-UTC date, the granularity the registry works at.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
