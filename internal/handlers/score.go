package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getScore(c *gin.Context) {
	noStore(c)

	sc, err := h.svc.GetScore(c.Request.Context(), clientID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	// sc is nil for clients that have never scored; render as null.
	c.JSON(http.StatusOK, gin.H{"score": sc})
}

func (h *Handler) getHistory(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondBadRequest(c, "limit", "must be an integer")
			return
		}
		limit = n
	}

	var before time.Time
	if v := c.Query("before"); v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			respondBadRequest(c, "before", "must be an RFC 3339 timestamp")
			return
		}
		before = t
	}

	page, err := h.svc.History(c.Request.Context(), limit, before, c.Query("before_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions":       page.Entries,
		"next_before":    page.NextBefore,
		"next_before_id": page.NextBeforeID,
	})
}

func (h *Handler) clearHistory(c *gin.Context) {
	noStore(c)

	if err := h.svc.ClearHistory(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
