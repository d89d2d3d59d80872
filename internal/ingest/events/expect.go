package events

import "fmt"

// UnexpectedEventType is returned when an incoming message's discriminant is
// not in the caller's expected set. It replaces the source language's macro
// that checked the expected variant and downcast in one step.
type UnexpectedEventType struct {
	Expected Set
	Previous Kind
	Received Kind
}

func (e *UnexpectedEventType) Error() string {
	return fmt.Sprintf("expected one of %v event after %s, but received %s", e.Expected, e.Previous, e.Received)
}

// Expect checks msg's discriminant against expected. On a match it returns
// msg unchanged so the caller can type-assert to the concrete variant; on a
// mismatch it returns a typed UnexpectedEventType error.
func Expect(expected Set, previous Kind, msg Message) (Message, error) {
	if pe, ok := msg.(ParseError); ok {
		return nil, fmt.Errorf("parse error: %w (text: %q)", pe.Err, pe.Text)
	}
	if !expected.Contains(msg.Kind()) {
		return nil, &UnexpectedEventType{Expected: expected, Previous: previous, Received: msg.Kind()}
	}
	return msg, nil
}
