package routes

import (
	"github.com/gin-gonic/gin"

	"vfxhub_backend/internal/auth"
	"vfxhub_backend/internal/handlers"
	"vfxhub_backend/internal/middleware"
	"vfxhub_backend/ws"
)

// RegisterRoutes mounts every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
	jwtManager *auth.JWTManager,
) {
	requireAuth := middleware.AuthMiddleware(jwtManager)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api.Group("/auth"))
		appHandlers.Profile.RegisterPublicRoutes(api.Group("/profiles"))
		appHandlers.Job.RegisterPublicRoutes(api.Group("/jobs"))

		authed := api.Group("")
		authed.Use(requireAuth)
		{
			appHandlers.Auth.RegisterProtectedRoutes(authed.Group("/auth"))
			appHandlers.Profile.RegisterRoutes(authed.Group("/profiles"))
			appHandlers.Notification.RegisterRoutes(authed.Group("/notifications"))
			appHandlers.Message.RegisterRoutes(authed.Group("/messages"))
			appHandlers.Proposal.RegisterRoutes(authed.Group("/proposals"))

			jobs := authed.Group("/jobs")
			jobs.Use(middleware.RequireRoles("studio", "admin"))
			appHandlers.Job.RegisterRoutes(jobs)
		}
	}

	wsGroup := ginRouter.Group("")
	wsGroup.Use(requireAuth)
	wsHandler.RegisterRoutes(wsGroup)
}
