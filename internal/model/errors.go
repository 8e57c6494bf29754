package model

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrSourceNotFound  = errors.New("source not found")
	ErrParse           = errors.New("parse error")
	ErrEmptyGroup      = errors.New("empty group")
	ErrInvalidArgument = errors.New("invalid argument")
)

// SourceNotFoundError is returned when the review source cannot be opened.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("source not found: %s", e.Path)
	}
	return fmt.Sprintf("source not found: %s: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Is(target error) bool { return target == ErrSourceNotFound }
func (e *SourceNotFoundError) Unwrap() error        { return e.Err }

// ParseError describes a row that could not be turned into a Record.
// Row is the 1-based line number in the source, the header being row 1.
type ParseError struct {
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: column %s: %s (got %q)", e.Row, e.Column, e.Reason, e.Value)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// EmptyGroupError is returned when statistics are requested for a group that has no data.
type EmptyGroupError struct {
	Key string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no data for group %q", e.Key)
}

func (e *EmptyGroupError) Is(target error) bool { return target == ErrEmptyGroup }

// InvalidArgumentError reports a bad query parameter.
type InvalidArgumentError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// InvalidArgument is a shorthand constructor.
func InvalidArgument(name, value, reason string) error {
	return &InvalidArgumentError{Name: name, Value: value, Reason: reason}
}
