// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Kind tags every failure the ledger can report. Callers branch on kinds,
// never on message text.
type Kind int

const (
	KindInternal Kind = iota
	KindUnavailable
	KindMissingField
	KindInvalidFormat
	KindEmptyPatch
	KindDuplicate
	KindUnknownType
	KindUnknownReference
	KindSameAccount
	KindInvalidAmount
	KindInvalidDate
	KindReferencedElsewhere
	KindInvalidToken
	KindTokenExpired
	KindNotFound
	KindNoUser
	KindSessionExpired
	KindInvalidAccountType
)

// Code returns the numeric class of the kind. The classes follow HTTP
// status semantics but are defined independently of any framework.
func (k Kind) Code() int {
	switch k {
	case KindMissingField, KindInvalidFormat, KindEmptyPatch, KindDuplicate,
		KindUnknownType, KindUnknownReference, KindSameAccount,
		KindInvalidAmount, KindInvalidDate, KindReferencedElsewhere:
		return 400
	case KindInvalidToken, KindTokenExpired:
		return 401
	case KindNotFound:
		return 404
	case KindNoUser, KindSessionExpired:
		return 412
	default:
		return 500
	}
}

// Status returns the human-readable name of the kind's numeric class.
func (k Kind) Status() string {
	switch k.Code() {
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 404:
		return "Not Found"
	case 412:
		return "Precondition Failed"
	default:
		return "Internal Server Error"
	}
}

// classMessage is the fallback message per class, used when an error
// carries no detail or when internal detail must not leak.
func classMessage(code int) string {
	switch code {
	case 400:
		return "The server cannot or will not process the request."
	case 401:
		return "Authentication is required and has failed or has not yet been provided."
	case 404:
		return "The requested resource could not be found."
	case 412:
		return "Please create a new token and/or user."
	default:
		return "An unexpected condition was encountered."
	}
}

// Error is a tagged ledger failure. Entity and Field carry structured
// context for logging; Detail, when set, is the user-facing message.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return classMessage(e.Kind.Code())
}

// E builds a tagged error. Detail may be empty, in which case the class
// fallback message applies.
func E(kind Kind, entity, field, detail string) *Error {
	return &Error{Kind: kind, Entity: entity, Field: field, Detail: detail}
}

// Ef builds a tagged error with a formatted detail message.
func Ef(kind Kind, entity, field, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Entity: entity, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of err, unwrapping as needed. Untagged errors
// are internal by definition.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Payload is the wire shape every failure is reported as.
type Payload struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// ToPayload maps any error onto the wire payload. Messages of 500-class
// failures are replaced by the class fallback so collaborator internals
// never reach callers.
func ToPayload(err error) Payload {
	k := KindOf(err)
	code := k.Code()
	msg := classMessage(code)
	if code < 500 {
		var e *Error
		if errors.As(err, &e) {
			msg = e.Error()
		}
	}
	return Payload{Code: code, Status: k.Status(), Error: msg}
}
