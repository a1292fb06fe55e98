// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/DecorForge/proposalcraft-go/internal/application/container"
	"github.com/DecorForge/proposalcraft-go/internal/presentation/http/handlers"
	"github.com/DecorForge/proposalcraft-go/internal/presentation/http/middleware"
	"github.com/DecorForge/proposalcraft-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Uploaded images are served straight off disk.
	r.Static("/media", config.MediaPath)

	// Initialize handlers
	proposalHandlers := handlers.NewProposalHandlers(container.ProposalService, container.Logger, container.PerfTracker)
	templateHandlers := handlers.NewTemplateHandlers(container.TemplateService, container.Logger, container.PerfTracker)
	editorHandlers := handlers.NewEditorHandlers(container.EditorService, container.Logger, container.PerfTracker)
	fragmentHandlers := handlers.NewFragmentHandlers(container.EditorService, container.Logger)
	imageHandlers := handlers.NewImageHandlers(container.ImageService, container.Logger, container.PerfTracker)
	previewHandlers := handlers.NewPreviewHandlers(container.EditorService, container.PreviewHub, container.Logger)
	sysOpHandlers := handlers.NewSysOpHandlers(container)

	api := r.Group("/api/v1")
	{
		// Proposal CRUD
		proposals := api.Group("/proposals")
		{
			proposals.GET("", proposalHandlers.GetProposals)
			proposals.GET("/:id", proposalHandlers.GetProposal)
			proposals.PUT("/:id", proposalHandlers.PutProposal)
			proposals.DELETE("/:id", proposalHandlers.DeleteProposal)
		}

		// Template library
		templates := api.Group("/templates")
		{
			templates.GET("", templateHandlers.GetTemplates)
			templates.GET("/categories", templateHandlers.GetTemplateCategories)
			templates.GET("/:id", templateHandlers.GetTemplate)
			templates.POST("/:id/instantiate", templateHandlers.PostTemplateInstantiate)
		}

		// Editor sessions
		editor := api.Group("/editor/sessions")
		{
			editor.POST("", editorHandlers.PostSession)
			editor.GET("/:id", editorHandlers.GetSession)
			editor.DELETE("/:id", editorHandlers.DeleteSession)

			editor.POST("/:id/elements", editorHandlers.PostElement)
			editor.PATCH("/:id/elements/:elementId", editorHandlers.PatchElement)
			editor.DELETE("/:id/elements/:elementId", editorHandlers.DeleteElement)
			editor.POST("/:id/elements/:elementId/duplicate", editorHandlers.PostDuplicate)
			editor.POST("/:id/elements/:elementId/reorder", editorHandlers.PostReorder)

			editor.POST("/:id/pointer", editorHandlers.PostPointer)
			editor.POST("/:id/escape", editorHandlers.PostEscape)
			editor.POST("/:id/selection/delete", editorHandlers.PostDeleteSelected)

			editor.POST("/:id/inline-edit", editorHandlers.PostInlineEdit)
			editor.PUT("/:id/inline-edit", editorHandlers.PutInlineEdit)
			editor.POST("/:id/inline-edit/commit", editorHandlers.PostInlineEditCommit)
			editor.DELETE("/:id/inline-edit", editorHandlers.DeleteInlineEdit)

			editor.POST("/:id/template", editorHandlers.PostTemplate)
			editor.POST("/:id/save", editorHandlers.PostSave)
			editor.POST("/:id/sections", editorHandlers.PostSection)
			editor.PUT("/:id/sections/active", editorHandlers.PutActiveSection)
			editor.PUT("/:id/sections/:sectionId", editorHandlers.PutSection)

			editor.GET("/:id/fragments/canvas", fragmentHandlers.GetCanvasFragment)
			editor.GET("/:id/fragments/inspector", fragmentHandlers.GetInspectorFragment)
			editor.GET("/:id/preview", previewHandlers.GetPreviewSocket)
		}

		// Image uploads
		api.POST("/images", imageHandlers.PostImage)
		api.DELETE("/images", imageHandlers.DeleteImage)

		// Operator surface
		sysop := api.Group("/sysop")
		{
			sysop.GET("/status", sysOpHandlers.GetStatus)
			sysop.POST("/log-level", sysOpHandlers.SetLogLevel)
			sysop.POST("/cache/purge", sysOpHandlers.PostCachePurge)
		}
	}

	return r
}
