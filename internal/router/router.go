package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/config"
	"github.com/inkwell/internal/handler"
	"github.com/rs/zerolog"
)

const sessionMaxAge = 30 * 24 * 60 * 60 // 30 天

// Setup 配置 Gin 引擎和路由。
func Setup(api *handler.API, cfg config.AppConfig, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(accessLog(log), gin.Recovery())

	// 会话 Cookie：签名、HttpOnly、SameSite=Strict，30 天有效。
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	r.Use(sessions.Sessions("inkwell_session", store))

	// 静态文件服务，托管上传的图片
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := r.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/signup", api.SignUp)
			auth.POST("/signin", api.SignIn)
			auth.POST("/signout", api.SignOut)
			auth.GET("/me", api.RequireAuth(), api.Me)
		}

		articles := apiGroup.Group("/articles")
		{
			articles.GET("", api.ListArticles)
			articles.GET("/:id", api.GetArticle)
			articles.GET("/:id/comments", api.ListComments)

			authed := articles.Group("")
			authed.Use(api.RequireAuth())
			{
				authed.POST("", api.CreateArticle)
				authed.PUT("/:id", api.UpdateArticle)
				authed.DELETE("/:id", api.DeleteArticle)
				authed.POST("/:id/like", api.ToggleArticleLike)
				authed.POST("/:id/bookmark", api.ToggleBookmark)
				authed.POST("/:id/comments", api.AddComment)
				authed.PUT("/:id/comments/:commentId", api.UpdateComment)
				authed.DELETE("/:id/comments/:commentId", api.DeleteComment)
				authed.POST("/:id/comments/:commentId/replies", api.AddReply)
				authed.POST("/:id/comments/:commentId/like", api.ToggleCommentLike)
			}
		}

		users := apiGroup.Group("/users")
		{
			users.GET("/profile", api.RequireAuth(), api.GetProfile)
			users.PUT("/profile", api.RequireAuth(), api.UpdateProfile)
			users.GET("/bookmarks", api.RequireAuth(), api.ListBookmarks)
			users.GET("/:username", api.GetUser)
			users.POST("/:username/follow", api.RequireAuth(), api.ToggleFollow)
		}

		apiGroup.GET("/search", api.Search)
		apiGroup.GET("/tags", api.ListTags)
		apiGroup.POST("/upload", api.RequireAuth(), api.UploadImage)
	}

	return r
}

// accessLog 用 zerolog 记录每个请求的方法、路径、状态码与耗时。
func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
