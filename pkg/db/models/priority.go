package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Priority is the priority of an issue. It is stored as its integer code.
type Priority int32

const (
	// NotAssigned means no priority was set.
	NotAssigned Priority = iota

	// Low priority.
	Low

	// Medium priority.
	Medium

	// High priority.
	High

	// Urgent priority.
	Urgent
)

// ErrUnknownPriority is returned when a priority code or name is not one of
// the known priorities.
var ErrUnknownPriority = errors.New("unknown priority")

// PriorityFromCode converts an integer code to a Priority.
func PriorityFromCode(code int32) (Priority, error) {
	p := Priority(code)
	if !p.Valid() {
		return NotAssigned, fmt.Errorf("%w code %d", ErrUnknownPriority, code)
	}
	return p, nil
}

// ParsePriority parses a priority name, ignoring case.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not-assigned", "none", "":
		return NotAssigned, nil
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	case "urgent":
		return Urgent, nil
	default:
		return NotAssigned, fmt.Errorf("%w %q", ErrUnknownPriority, s)
	}
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p >= NotAssigned && p <= Urgent
}

// Code returns the integer code of the priority.
func (p Priority) Code() int32 {
	return int32(p)
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	switch p {
	case NotAssigned:
		return "not-assigned"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Urgent:
		return "urgent"
	default:
		return "unknown"
	}
}

var (
	_ sql.Scanner              = (*Priority)(nil)
	_ driver.Valuer            = Priority(0)
	_ encoding.TextMarshaler   = Priority(0)
	_ encoding.TextUnmarshaler = (*Priority)(nil)
)

// Scan implements sql.Scanner.
func (p *Priority) Scan(src interface{}) error {
	var code int64
	switch v := src.(type) {
	case int64:
		code = v
	case int32:
		code = int64(v)
	case int:
		code = int64(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 32)
		if err != nil {
			return fmt.Errorf("scan priority: %w", err)
		}
		code = n
	case string:
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("scan priority: %w", err)
		}
		code = n
	case nil:
		return fmt.Errorf("scan priority: %w code NULL", ErrUnknownPriority)
	default:
		return fmt.Errorf("scan priority: unsupported type %T", src)
	}

	if code < int64(NotAssigned) || code > int64(Urgent) {
		return fmt.Errorf("%w code %d", ErrUnknownPriority, code)
	}

	*p = Priority(code)
	return nil
}

// Value implements driver.Valuer.
func (p Priority) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w code %d", ErrUnknownPriority, int32(p))
	}
	return int64(p), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() (text []byte, err error) {
	return []byte(p.String()), nil
}
