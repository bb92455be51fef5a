package warnings

import (
	"net/http"
	"strings"

	"party_phonecountry/platform/httpkit"
	"party_phonecountry/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest = "invalid request"
	msgUnknownWarning = "unknown warning key"
)

var warningKeyPrefixes = []string{"warn_fixed_line_phone.", "warn_mobile_line_phone."}

type AcknowledgeRequest struct {
	Always bool `json:"always"`
}

type AcknowledgeResponse struct {
	Key    string `json:"key"`
	Always bool   `json:"always"`
}

// Handler handles warning acknowledgement requests.
type Handler struct {
	store Store
	val   *validator.Validator
}

// NewHandler creates a new warnings handler.
func NewHandler(store Store, val *validator.Validator) *Handler {
	return &Handler{store: store, val: val}
}

// RegisterRoutes registers warning routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:key/acknowledge", h.Acknowledge)
}

func (h *Handler) Acknowledge(c *gin.Context) {
	key := c.Param("key")
	if !h.validKey(key) {
		httpkit.Error(c, http.StatusBadRequest, msgUnknownWarning, nil)
		return
	}

	var req AcknowledgeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.store.Acknowledge(c.Request.Context(), identity.UserID(), key, req.Always); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, AcknowledgeResponse{Key: key, Always: req.Always})
}

// validKey accepts the line type warning keys raised for a record id.
func (h *Handler) validKey(key string) bool {
	for _, prefix := range warningKeyPrefixes {
		if id, ok := strings.CutPrefix(key, prefix); ok {
			return h.val.Var(id, "required,uuid") == nil
		}
	}
	return false
}
