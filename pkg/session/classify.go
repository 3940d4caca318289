package session

import (
	"github.com/meetwire/meetwire-go/pkg/wire"
)

// IsFatal reports whether a failure code permanently ends listening for
// further failure events on an attempt.
//
// Non-fatal codes (PASSWORD_REQUIRED, NOT_AUTHORIZED) are credential
// problems: the attempt still rejects, but the caller may retry with new
// credentials.
func IsFatal(code wire.ErrorCode) bool {
	switch code {
	case wire.CodeConnectionDropped, wire.CodeServerError, wire.CodeOtherError:
		return true
	default:
		return false
	}
}
