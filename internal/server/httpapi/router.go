// Package httpapi exposes the ledger over a JSON HTTP API built on gin.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Ledger interface {
	HasSubmissionToday(ctx context.Context, userID string) (*models.Submission, error)
	Create(ctx context.Context, userID, yesterday, today, blockers string) (*models.Submission, error)
	Update(ctx context.Context, id, userID, yesterday, today, blockers string) (*models.Submission, error)
	ListForUser(ctx context.Context, userID string, period models.HistoryPeriod) ([]*models.Submission, error)
}

type Team interface {
	Snapshot(ctx context.Context, filter models.TeamFilter) ([]*models.TeamEntry, error)
}

type Directory interface {
	Register(ctx context.Context, userName, email string) (*models.User, error)
	Login(ctx context.Context, userName string) (*models.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	ledger Ledger
	team   Team
	users  Directory
	store  Pinger
	logger logging.Logger
}

func NewHandler(ledger Ledger, team Team, users Directory, store Pinger, logger logging.Logger) *Handler {
	return &Handler{ledger: ledger, team: team, users: users, store: store, logger: logger.With("module", "http")}
}

// NewRouter wires the API routes under /api.
func NewRouter(h *Handler, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", common.UserIDHeaderName},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(identify())

	api := r.Group("/api")
	{
		api.POST("/users/login", h.Login)
		api.POST("/users/register", h.Register)

		standups := api.Group("/standups", h.validateUser)
		standups.POST("", h.CreateStandup)
		standups.PUT("/:id", h.UpdateStandup)
		standups.GET("", h.ListStandups)
		standups.GET("/team", h.TeamStandups)
		standups.GET("/check-daily", h.CheckDaily)

		api.GET("/health", h.Health)
	}
	return r
}
