package utils

import "github.com/gin-gonic/gin"

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	// Partial lists sub-operations that failed while the rest of the request
	// succeeded; empty on full success.
	Partial []string `json:"partial_failures,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "success", data)
}

// PartialSuccess returns 200 with the data that was produced plus the list of
// failed sub-operations, so callers can render results and still surface errors.
func PartialSuccess(ctx *gin.Context, data interface{}, failures []string) {
	ctx.JSON(200, JSONResponse{
		Code:    20601,
		Message: "partial success",
		Data:    data,
		Partial: failures,
	})
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}
