package wire

// ErrorCode identifies why a connection attempt failed.
type ErrorCode string

const (
	// CodePasswordRequired indicates the room requires a password or the
	// supplied credentials were rejected. Recoverable: the caller may
	// retry with new credentials.
	CodePasswordRequired ErrorCode = "PASSWORD_REQUIRED"

	// CodeNotAuthorized indicates the authenticated identity is not
	// allowed into the room. Recoverable.
	CodeNotAuthorized ErrorCode = "NOT_AUTHORIZED"

	// CodeConnectionDropped indicates the backend closed the connection
	// mid-handshake. Fatal.
	CodeConnectionDropped ErrorCode = "CONNECTION_DROPPED"

	// CodeServerError indicates an internal backend error. Fatal.
	CodeServerError ErrorCode = "SERVER_ERROR"

	// CodeOtherError indicates an unclassified connection error. Fatal.
	CodeOtherError ErrorCode = "OTHER_ERROR"
)

// String returns the wire literal for the code.
func (c ErrorCode) String() string {
	return string(c)
}

// IsValid returns true if the code is a known connection error code.
func (c ErrorCode) IsValid() bool {
	switch c {
	case CodePasswordRequired, CodeNotAuthorized, CodeConnectionDropped,
		CodeServerError, CodeOtherError:
		return true
	default:
		return false
	}
}
