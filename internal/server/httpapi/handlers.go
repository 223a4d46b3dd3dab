package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/gin-gonic/gin"
)

type standupRequest struct {
	Yesterday string `json:"yesterday"`
	Today     string `json:"today"`
	Blockers  string `json:"blockers"`
}

type userRequest struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

func (h *Handler) Register(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.UserName, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) Login(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	u, err := h.users.Login(c.Request.Context(), req.UserName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) CheckDaily(c *gin.Context) {
	s, err := h.ledger.HasSubmissionToday(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		writeError(c, err)
		return
	}
	if s == nil {
		c.JSON(http.StatusOK, gin.H{"hasSubmittedToday": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasSubmittedToday": true, "standup": s})
}

func (h *Handler) CreateStandup(c *gin.Context) {
	var req standupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	s, err := h.ledger.Create(c.Request.Context(), c.GetString(userIDKey), req.Yesterday, req.Today, req.Blockers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) UpdateStandup(c *gin.Context) {
	var req standupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	s, err := h.ledger.Update(c.Request.Context(), c.Param("id"), c.GetString(userIDKey), req.Yesterday, req.Today, req.Blockers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) ListStandups(c *gin.Context) {
	period := models.ParseHistoryPeriod(c.Query("period"))
	list, err := h.ledger.ListForUser(c.Request.Context(), c.GetString(userIDKey), period)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) TeamStandups(c *gin.Context) {
	filter := models.ParseTeamFilter(c.Query("filter"))
	list, err := h.team.Snapshot(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Health(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			h.logger.Warn(c.Request.Context(), "storage ping failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "UNAVAILABLE"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
