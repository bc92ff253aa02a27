package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyprep/content-service/internal/remote"
)

// ProxyHandler forwards CRUD requests for catalog resources (courses,
// subjects, topics and friends) to the remote API verbatim. The dashboard
// owns no catalog data; it only needs an authenticated path to it.
type ProxyHandler struct {
	BaseHandler
	client *remote.Client
}

func NewProxyHandler(client *remote.Client, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		BaseHandler: NewBaseHandler(logger),
		client:      client,
	}
}

// Forward relays the request for one resource collection. The remote path is
// the resource name plus whatever trails it; query string and body pass
// through untouched.
func (h *ProxyHandler) Forward(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := resource + c.Param("rest")

		var body io.Reader
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			body = c.Request.Body
		}

		result, err := h.client.Proxy(c.Request.Context(), c.Request.Method, path, c.Request.URL.Query(), body)
		if err != nil {
			h.RespondWithError(c, http.StatusBadGateway, "Upstream request failed", err)
			return
		}

		contentType := result.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		c.Data(result.StatusCode, contentType, result.Body)
	}
}
