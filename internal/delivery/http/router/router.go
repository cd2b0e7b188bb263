// Package router contains routing setup for the HTTP delivery.
package router

import (
	"campus/internal/delivery/http/middleware"
	"campus/internal/delivery/http/router/handler"
	"campus/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CourseHandler  *handler.CourseHandler
	SectionHandler *handler.SectionHandler
	LessonHandler  *handler.LessonHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	courseHandler  *handler.CourseHandler
	sectionHandler *handler.SectionHandler
	lessonHandler  *handler.LessonHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		courseHandler:  params.CourseHandler,
		sectionHandler: params.SectionHandler,
		lessonHandler:  params.LessonHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	instructorOnly := r.authMiddleware.RequireRole(entity.RoleInstructor)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/token/refresh", r.authHandler.Refresh)
		authGroup.POST("/token/revoke", r.authHandler.Revoke)
		authGroup.POST("/password/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/password/reset-password", r.authHandler.ResetPassword)
		authGroup.POST("/password/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}

	// The public course listing carries no bearer token; everything else under
	// /courses requires authentication.
	api.GET("/courses/public", r.courseHandler.ListPublic)

	courseGroup := api.Group("/courses")
	courseGroup.Use(r.authMiddleware.Authenticate)
	{
		courseGroup.GET("/published", r.courseHandler.ListPublished)
		courseGroup.GET("/enrollments", r.courseHandler.ListEnrollments)
		courseGroup.GET("", r.courseHandler.ListOwn, instructorOnly)
		courseGroup.POST("", r.courseHandler.Create, instructorOnly)
		courseGroup.GET("/:id", r.courseHandler.Get)
		courseGroup.PUT("/:id", r.courseHandler.Update, instructorOnly)
		courseGroup.DELETE("/:id", r.courseHandler.Delete, instructorOnly)
		courseGroup.PATCH("/:id/publish", r.courseHandler.SetPublished, instructorOnly)
		courseGroup.POST("/:id/enroll", r.courseHandler.Enroll)
	}

	// Section routes
	sectionGroup := api.Group("/sections")
	sectionGroup.Use(r.authMiddleware.Authenticate)
	{
		sectionGroup.POST("/:courseId", r.sectionHandler.Create, instructorOnly)
		sectionGroup.GET("/:courseId", r.sectionHandler.List)
		sectionGroup.PATCH("/:courseId/reorder", r.sectionHandler.Reorder, instructorOnly)
		sectionGroup.PATCH("/section/:sectionId", r.sectionHandler.Update, instructorOnly)
		sectionGroup.DELETE("/section/:sectionId", r.sectionHandler.Delete, instructorOnly)
	}

	// Lesson routes
	lessonGroup := api.Group("/lessons")
	lessonGroup.Use(r.authMiddleware.Authenticate)
	{
		lessonGroup.POST("/:sectionId", r.lessonHandler.Create, instructorOnly)
		lessonGroup.PATCH("/:sectionId/reorder", r.lessonHandler.Reorder, instructorOnly)
		lessonGroup.GET("/lesson/:lessonId", r.lessonHandler.Get)
		lessonGroup.PATCH("/lesson/:lessonId", r.lessonHandler.Update, instructorOnly)
		lessonGroup.DELETE("/lesson/:lessonId", r.lessonHandler.Delete, instructorOnly)
		lessonGroup.POST("/lesson/:lessonId/progress", r.lessonHandler.RecordProgress)
		lessonGroup.GET("/lesson/:lessonId/content", r.lessonHandler.GetContent)
	}
}
