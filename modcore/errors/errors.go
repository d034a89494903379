/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package errors provides the error types returned by the modinfo core.
//
// Every failure the core can produce is a terminal, structured value: the
// library never retries, never recovers internally and never returns a
// partially populated model together with an error. The types below are
// simple value carriers with stable message formats, designed to be:
//
//   - easy to construct from parsing, lifting and marshaling code,
//   - easy to recognize via errors.As / errors.Is,
//   - and easy for users to understand when surfaced in logs or diagnostics.
//
// # Error Kinds
//
// The descriptor pipeline distinguishes four kinds of failure:
//
//   - FormatError (KindUnknownFormat)
//     The input does not match the identifying shape of any known descriptor
//     generation. Nothing was deserialized.
//
//   - MalformedError (KindMalformed)
//     The input claims a generation but violates that generation's
//     structural grammar: bad XML syntax, a missing structurally required
//     element or attribute, or a typed attribute that does not parse.
//
//   - ValidationError (KindInvalid)
//     A structurally valid document lifts to a canonical model that violates
//     a model invariant (empty Name, unparseable Version, empty dependency
//     identifier).
//
//   - VersionError (KindInvalidVersion)
//     A version string cannot be parsed even under lenient rules.
//
// ParseError, MarshalError and UnmarshalError cover enum-like values
// (Generation, Bump, Field) when they travel through flags, JSON or YAML.
//
// # Usage
//
//	m, err := codec.Parse(text)
//	switch errors.KindOf(err) {
//	case errors.KindUnknownFormat:
//	    // not a ModInfo.xml at all
//	case errors.KindMalformed:
//	    // broken markup
//	case errors.KindInvalid:
//	    // document readable, contents unacceptable
//	}
package errors

import (
	stderrors "errors"
	"strconv"
)

// Sentinel values matched by the Is methods of the typed errors, so callers
// can write errors.Is(err, errors.ErrMalformed) without a type assertion.
var (
	ErrUnknownFormat  = stderrors.New("modinfo: unknown descriptor format")
	ErrMalformed      = stderrors.New("modinfo: malformed descriptor")
	ErrInvalid        = stderrors.New("modinfo: invalid descriptor")
	ErrInvalidVersion = stderrors.New("modinfo: invalid version")
)

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Generation",
// "Bump", "Field"), and Value contains the exact string that could not be
// interpreted.
//
// # Example
//
//	func ParseGeneration(s string) (Generation, error) {
//	    switch s {
//	    case "v1":
//	        return V1, nil
//	    case "v2":
//	        return V2, nil
//	    default:
//	        // "modinfo: invalid Generation value: v3"
//	        return 0, &errors.ParseError{Type: "Generation", Value: s}
//	    }
//	}
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Bump").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"modinfo: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "modinfo: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error (for example, a
// numeric cast that was never validated).
type MarshalError struct {
	// Type is the logical name of the type being marshaled (for example, "Bump").
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"modinfo: cannot marshal invalid {Type} value: {Value}"
//
// where Value is rendered as a decimal integer.
func (e *MarshalError) Error() string {
	return "modinfo: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling JSON or YAML data into a typed
// value fails.
//
// Type identifies the logical type being populated, Data contains the
// original raw payload, and Reason provides a human-readable description of
// what went wrong.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"modinfo: cannot unmarshal {Type}: {Reason}"
//
// The Data field is intentionally not included in the formatted message.
func (e *UnmarshalError) Error() string {
	return "modinfo: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when a model violates one of its invariants.
//
// Type identifies the logical name of the type being validated (for example,
// "Modinfo", "Dependency"), Field optionally identifies which field failed
// validation, Reason provides a human-readable explanation, Value optionally
// contains the offending value and Err optionally carries the underlying
// cause (for example a *VersionError when the Version field is unparseable).
//
// # Example
//
//	func (m Modinfo) Validate() error {
//	    if strings.TrimSpace(m.Name) == "" {
//	        return &errors.ValidationError{
//	            Type:   "Modinfo",
//	            Field:  "Name",
//	            Reason: "must not be empty",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"modinfo: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"modinfo: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "modinfo: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "modinfo: invalid " + e.Type + ": " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalid.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// VersionError is returned when a version string cannot be parsed, even
// under the lenient rules applied to mod version strings.
type VersionError struct {
	// Value is the original input.
	Value string

	// Reason describes which lenient rule could not be satisfied.
	Reason string
}

// Error implements the error interface for VersionError.
//
// The error message format is:
//
//	"modinfo: invalid version {Value}: {Reason}"
//
// with Value rendered as a quoted Go string.
func (e *VersionError) Error() string {
	return "modinfo: invalid version " + strconv.Quote(e.Value) + ": " + e.Reason
}

// Is reports whether target is ErrInvalidVersion.
func (e *VersionError) Is(target error) bool { return target == ErrInvalidVersion }

// FormatError is returned when the input matches no known descriptor
// generation. Root holds the root element name that was found, if any.
type FormatError struct {
	Root   string
	Reason string
}

// Error implements the error interface for FormatError.
//
//	"modinfo: unknown descriptor format: {Reason}"
//	"modinfo: unknown descriptor format <{Root}>: {Reason}"
func (e *FormatError) Error() string {
	if e.Root != "" {
		return "modinfo: unknown descriptor format <" + e.Root + ">: " + e.Reason
	}
	return "modinfo: unknown descriptor format: " + e.Reason
}

// Is reports whether target is ErrUnknownFormat.
func (e *FormatError) Is(target error) bool { return target == ErrUnknownFormat }

// MalformedError is returned when markup that claims a generation violates
// that generation's structural grammar.
type MalformedError struct {
	// Generation is the claimed generation ("v1" or "v2").
	Generation string

	// Element names the offending element, attribute path or "" when the
	// failure is not tied to a single element (for example an XML syntax
	// error).
	Element string

	// Reason describes the violation.
	Reason string

	// Err is the underlying cause (for example the XML decoder error).
	Err error
}

// Error implements the error interface for MalformedError.
//
//	"modinfo: malformed {Generation} descriptor at <{Element}>: {Reason}"
//	"modinfo: malformed {Generation} descriptor: {Reason}"
func (e *MalformedError) Error() string {
	if e.Element != "" {
		return "modinfo: malformed " + e.Generation + " descriptor at <" + e.Element + ">: " + e.Reason
	}
	return "modinfo: malformed " + e.Generation + " descriptor: " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *MalformedError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformed.
func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Kind classifies an error produced by the descriptor pipeline.
type Kind int

const (
	// KindNone is reported for a nil error or an error the core did not produce.
	KindNone Kind = iota
	KindUnknownFormat
	KindMalformed
	KindInvalid
	KindInvalidVersion
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnknownFormat:
		return "unknown-format"
	case KindMalformed:
		return "malformed"
	case KindInvalid:
		return "invalid"
	case KindInvalidVersion:
		return "invalid-version"
	default:
		return "none"
	}
}

// KindOf returns the kind of err.
//
// Classification follows a fixed precedence over the whole error chain,
// regardless of wrapping depth: FormatError, then MalformedError, then
// ValidationError, then VersionError. A ValidationError wrapping a
// VersionError therefore reports KindInvalid, and a ValidationError that
// wraps a MalformedError reports KindMalformed. A bare VersionError (as
// returned by semver.ParseVersion) reports KindInvalidVersion.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		fe *FormatError
		me *MalformedError
		ve *ValidationError
		se *VersionError
	)
	switch {
	case stderrors.As(err, &fe):
		return KindUnknownFormat
	case stderrors.As(err, &me):
		return KindMalformed
	case stderrors.As(err, &ve):
		return KindInvalid
	case stderrors.As(err, &se):
		return KindInvalidVersion
	default:
		return KindNone
	}
}
