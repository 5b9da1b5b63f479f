package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/handoff/api/v1"
	srvErrors "github.com/kubev2v/handoff/pkg/errors"
)

// CreateWork submits a work item
// (POST /work)
func (h *Handler) CreateWork(c *gin.Context) {
	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, v1.Error{Error: srvErrors.NewThrottledError().Error()})
		return
	}

	var req v1.CreateWorkJSONRequestBody
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body: " + err.Error()})
			return
		}
	}

	item, err := req.ToModel(h.defaultContains)
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
		return
	}

	// the worker owns item once submitted, respond from a copy
	item.Handle = uuid.New()
	item.SubmittedAt = time.Now()
	accepted := *item

	if err := h.controller.Submit(item); err != nil {
		switch {
		case srvErrors.IsUnsatisfiableWorkError(err), srvErrors.IsUnverifiableWorkError(err):
			c.JSON(http.StatusUnprocessableEntity, v1.Error{Error: err.Error()})
		case srvErrors.IsWorkerStoppedError(err):
			c.JSON(http.StatusServiceUnavailable, v1.Error{Error: err.Error()})
		default:
			zap.S().Named("work_handler").Errorw("failed to submit work", "error", err)
			c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to submit work"})
		}
		return
	}

	c.JSON(http.StatusAccepted, v1.NewWorkFromModel(accepted))
}

// GetWork returns a work item by id
// (GET /work/{id})
func (h *Handler) GetWork(c *gin.Context, id string) {
	handle, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid work id: " + id})
		return
	}

	item, err := h.controller.Lookup(handle)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, v1.Error{Error: err.Error()})
			return
		}
		zap.S().Named("work_handler").Errorw("failed to get work", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to get work"})
		return
	}

	c.JSON(http.StatusOK, v1.NewWorkFromModel(item))
}

// GetStatus returns the controller status
// (GET /status)
func (h *Handler) GetStatus(c *gin.Context) {
	var status v1.Status
	status.FromModel(h.controller.Status())
	c.JSON(http.StatusOK, status)
}
