package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/oxabz/time-tracker/internal/service"
)

// ActivityHandler exposes the ledger over HTTP. The ledger itself holds no
// lock, so the handler serializes every call through its mutex, matching the
// single in-flight mutation the ledger's contract assumes.
type ActivityHandler struct {
	ledger *service.LedgerService
	mu     sync.Mutex
}

type startRequest struct {
	Name   string `json:"name"`
	Offset int64  `json:"offset"`
}

type stopRequest struct {
	Offset int64 `json:"offset"`
}

func NewActivityHandler(ledger *service.LedgerService) *ActivityHandler {
	return &ActivityHandler{ledger: ledger}
}

func (h *ActivityHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	h.mu.Lock()
	apiErr := h.ledger.Start(c.Request.Context(), req.Name, req.Offset)
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ActivityHandler) Stop(c *gin.Context) {
	var req stopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	h.mu.Lock()
	apiErr := h.ledger.Stop(c.Request.Context(), req.Offset)
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ActivityHandler) Current(c *gin.Context) {
	h.mu.Lock()
	current, apiErr := h.ledger.Current(c.Request.Context())
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if current == nil {
		c.JSON(http.StatusOK, gin.H{"name": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": current.Name, "startTime": current.StartTime})
}

func (h *ActivityHandler) List(c *gin.Context) {
	h.mu.Lock()
	names, apiErr := h.ledger.ListNames(c.Request.Context())
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": names})
}

func (h *ActivityHandler) Times(c *gin.Context) {
	h.mu.Lock()
	times, apiErr := h.ledger.Totals(c.Request.Context())
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"times": times})
}

func (h *ActivityHandler) Clear(c *gin.Context) {
	h.mu.Lock()
	apiErr := h.ledger.Clear(c.Request.Context())
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ActivityHandler) HardClear(c *gin.Context) {
	h.mu.Lock()
	apiErr := h.ledger.HardClear(c.Request.Context())
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ActivityHandler) Today(c *gin.Context) {
	h.mu.Lock()
	intervals, apiErr := h.ledger.Today(c.Request.Context())
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": intervals})
}

// Export streams the aggregated times as a CSV download. The snapshot is
// taken under the lock; the lock is released before the body is written so a
// slow client cannot block tracking calls.
func (h *ActivityHandler) Export(c *gin.Context) {
	h.mu.Lock()
	times, apiErr := h.ledger.Totals(c.Request.Context())
	h.mu.Unlock()
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="activities.csv"`)
	c.Status(http.StatusOK)
	if err := service.WriteTimesCSV(c.Writer, times); err != nil {
		// Headers are already out; all we can do is record the failure.
		_ = c.Error(err)
	}
}
