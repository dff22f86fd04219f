package ticket

import "errors"

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrInvalidTicket  = errors.New("invalid ticket")
	ErrInvalidStatus  = errors.New("invalid ticket status")
	// ErrNotPrivileged is an authorization failure, not a workflow failure.
	ErrNotPrivileged   = errors.New("operation requires a staff role")
	ErrProtocolSet     = errors.New("protocol already assigned")
	ErrInvalidProtocol = errors.New("invalid protocol")
	ErrInvalidComment  = errors.New("invalid comment")
	ErrInvalidFile     = errors.New("invalid attachment")
)
