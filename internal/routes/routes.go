package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dealdesk/internal/handlers"
	"dealdesk/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	dealHandler *handlers.DealHandler,
	milestoneHandler *handlers.MilestoneHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	deals := r.Group("/deals")
	{
		deals.POST("", dealHandler.Create)
		deals.GET("", dealHandler.List)
		deals.GET("/summary", dealHandler.Summary)
		deals.GET("/:id", dealHandler.GetByID)
		deals.POST("/:id/status", dealHandler.UpdateStatus)
		deals.PUT("/:id/offer", dealHandler.UpdateOffer)
		deals.PUT("/:id/priority", dealHandler.UpdatePriority)
		deals.PUT("/:id/schedule", dealHandler.Reschedule)
		deals.PUT("/:id/assignee", dealHandler.Assign)
		deals.GET("/:id/activities", dealHandler.Activities)
		deals.GET("/:id/timeline.pdf", dealHandler.TimelinePDF)

		deals.GET("/:id/participants", dealHandler.Participants)
		deals.POST("/:id/participants", dealHandler.AddParticipant)
		deals.DELETE("/:id/participants/:pid", dealHandler.RemoveParticipant)

		milestones := deals.Group("/:id/milestones/:mid")
		{
			milestones.POST("/complete", milestoneHandler.Complete)
			milestones.POST("/reopen", milestoneHandler.Reopen)
			milestones.POST("/notes", milestoneHandler.Annotate)
			milestones.PUT("/due-date", milestoneHandler.AdjustDueDate)
		}
	}

	return r
}
