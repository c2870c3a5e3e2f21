package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload as the response body. Success bodies in this API are
// bare resources (a run, a run listing); only Error wraps its payload in the
// {"error": ...} envelope.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes payload with 200 OK. Run lookups and listings go through here.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
