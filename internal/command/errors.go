package command

import "errors"

var ErrInvalidParam = errors.New("invalid parameter")

// Error messages sent to clients
const (
	MsgInvalidJSON    = "Invalid JSON message"
	MsgUnknownCommand = "Unknown command: %s"
	MsgHandlerPanic   = "Internal error while executing %s"
)
