package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data wrapped in Resp.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Fail sends status with {"error": msg}.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Error: msg})
}

// Unauthorized sends 401 for a failed signature check.
func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, MsgInvalidSignature)
}

// BadRequest sends 400 for a body that is not valid JSON.
func BadRequest(c *gin.Context) {
	Fail(c, http.StatusBadRequest, MsgInvalidPayload)
}

// Forbidden sends 403.
func Forbidden(c *gin.Context) {
	Fail(c, http.StatusForbidden, MsgForbidden)
}

// TooManyRequests sends 429.
func TooManyRequests(c *gin.Context) {
	Fail(c, http.StatusTooManyRequests, MsgRateLimited)
}

// PayloadTooLarge sends 413.
func PayloadTooLarge(c *gin.Context) {
	Fail(c, http.StatusRequestEntityTooLarge, MsgPayloadTooLarge)
}

// InternalError sends 500 internal server error.
func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, MsgInternalError)
}
