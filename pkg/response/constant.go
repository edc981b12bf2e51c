package response

const (
	MessageSuccess = "Success"

	MsgInvalidSignature = "Invalid signature"
	MsgInvalidPayload   = "Invalid JSON payload"
	MsgInternalError    = "Internal server error"
	MsgForbidden        = "Forbidden"
	MsgRateLimited      = "Rate limit exceeded"
	MsgPayloadTooLarge  = "Payload too large"
)
