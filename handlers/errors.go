package handlers

import (
	"errors"
	"net/http"
	"time"

	"plazoleta-api/middleware"
	"plazoleta-api/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var kindStatus = map[usecase.Kind]int{
	usecase.KindInvalidInput:               http.StatusBadRequest,
	usecase.KindUnauthorized:               http.StatusForbidden,
	usecase.KindIdentityNotFound:           http.StatusNotFound,
	usecase.KindRestaurantNotFound:         http.StatusNotFound,
	usecase.KindDishNotFound:               http.StatusNotFound,
	usecase.KindIdentityServiceUnavailable: http.StatusBadGateway,
}

// writeError translates a use case failure into the response body. Only the
// classified message reaches the caller; wrapped causes are logged.
func (h *Handler) writeError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "internal server error"

	var ue *usecase.Error
	if errors.As(err, &ue) {
		if s, ok := kindStatus[ue.Kind]; ok {
			status = s
			message = ue.Message
		}
	}

	entry := h.log.WithError(err).WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"path":       c.FullPath(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	respondError(c, status, message)
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"timestamp": time.Now().Format(middleware.TimestampLayout),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
	})
}
