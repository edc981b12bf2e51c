package bridge

import "errors"

var (
	ErrClientClosed   = errors.New("client closed")
	ErrSendBufferFull = errors.New("send buffer full")
	ErrHubClosed      = errors.New("hub closed")
)
