package api

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/api/handler"
	"github.com/qs3c/blog_web_server/internal/api/middleware"
	"github.com/qs3c/blog_web_server/internal/model"
)

// Handlers 路由用到的全部处理器
type Handlers struct {
	View        *handler.View
	Blog        *handler.BlogHandler
	Auth        *handler.AuthHandler
	Admin       *handler.AdminHandler
	Post        *handler.PostHandler
	Category    *handler.CategoryHandler
	Tag         *handler.TagHandler
	Publication *handler.PublicationHandler
	User        *handler.UserHandler
	Site        *handler.SiteHandler
	Comment     *handler.CommentHandler
	Upload      *handler.UploadHandler
	Activity    *handler.ActivityHandler
	WebSocket   *handler.WebSocketHandler
}

type Router struct {
	h      *Handlers
	tmpl   *template.Template
	static http.FileSystem
	logger *slog.Logger
	cfg    *config.Config
}

func NewRouter(h *Handlers, tmpl *template.Template, static http.FileSystem, logger *slog.Logger, cfg *config.Config) *Router {
	return &Router{
		h:      h,
		tmpl:   tmpl,
		static: static,
		logger: logger,
		cfg:    cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID(r.logger))
	engine.Use(middleware.CORS(r.cfg.CORS))
	engine.Use(middleware.Session(r.cfg.Session))

	engine.SetHTMLTemplate(r.tmpl)
	if r.static != nil {
		engine.StaticFS("/static", r.static)
	}
	engine.NoRoute(r.h.View.NotFound)

	engine.GET("/healthz", handler.Healthz)

	// 前台页面
	engine.GET("/", r.h.Blog.Home)
	engine.GET("/posts/:slug", r.h.Blog.Article)
	engine.POST("/posts/:slug/comments", r.h.Blog.CreateComment)
	engine.GET("/categories/:slug", r.h.Blog.Category)
	engine.POST("/newsletter", r.h.Blog.Subscribe)
	engine.POST("/comments/:id/like", r.h.Comment.Like)
	engine.POST("/comments/:id/dislike", r.h.Comment.Dislike)

	// 登录
	engine.GET("/login", r.h.Auth.LoginPage)
	engine.POST("/login", r.h.Auth.Login)
	engine.POST("/logout", r.h.Auth.Logout)

	// 后台页面
	admin := engine.Group("/admin")
	admin.Use(middleware.RequireSession())
	{
		admin.GET("", r.h.Admin.Dashboard)
		admin.GET("/ws", r.h.WebSocket.Handle)
	}

	// 后台接口
	api := engine.Group("/admin/api")
	api.Use(middleware.RequireAPISession())
	{
		api.GET("/me", r.h.Auth.Me)

		posts := api.Group("/posts")
		{
			posts.GET("", r.h.Post.List)
			posts.POST("", r.h.Post.Create)
			posts.GET("/:id", r.h.Post.Get)
			posts.PUT("/:id", r.h.Post.Update)
			posts.DELETE("/:id", r.h.Post.Delete)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", r.h.Category.Tree)
			categories.GET("/options", r.h.Category.Options)
			categories.POST("", r.h.Category.Create)
			categories.PUT("/:id", r.h.Category.Update)
			categories.DELETE("/:id", r.h.Category.Delete)
			categories.POST("/:id/move-up", r.h.Category.MoveUp)
			categories.POST("/:id/move-down", r.h.Category.MoveDown)
			categories.POST("/:id/move", r.h.Category.Move)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", r.h.Tag.List)
			tags.POST("", r.h.Tag.Create)
			tags.PUT("/:id", r.h.Tag.Update)
			tags.DELETE("/:id", r.h.Tag.Delete)
		}

		publications := api.Group("/publications")
		{
			publications.GET("", r.h.Publication.List)
			publications.POST("", r.h.Publication.Create)
			publications.PUT("/:id", r.h.Publication.Update)
			publications.DELETE("/:id", r.h.Publication.Delete)
		}

		// 用户管理仅限管理员
		users := api.Group("/users")
		users.Use(middleware.RequireRole(model.RoleAdmin))
		{
			users.GET("", r.h.User.List)
			users.PUT("/:id", r.h.User.Update)
			users.DELETE("/:id", r.h.User.Delete)
		}

		api.GET("/seo", r.h.Site.GetSEO)
		api.PUT("/seo", r.h.Site.UpdateSEO)
		api.GET("/analytics", r.h.Site.Analytics)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", r.h.Site.Notifications)
			notifications.POST("/read-all", r.h.Site.MarkAllNotificationsRead)
			notifications.POST("/:id/read", r.h.Site.MarkNotificationRead)
		}

		api.DELETE("/comments/:id", r.h.Comment.Delete)
		api.POST("/uploads/images", r.h.Upload.Image)
		api.POST("/imports/posts", r.h.Upload.Import)
		api.GET("/exports/posts", r.h.Upload.Export)
		api.GET("/activities", r.h.Activity.List)
	}

	return engine
}
