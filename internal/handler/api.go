package handler

import (
	"github.com/inkwell/internal/config"
	"github.com/inkwell/internal/service"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	log      zerolog.Logger
	auth     *service.AuthService
	articles *service.ArticleService
	comments *service.CommentService
	users    *service.UserService
	search   *service.SearchService
	cfg      config.AppConfig
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig, log zerolog.Logger) *API {
	return &API{
		db:       gdb,
		log:      log,
		auth:     service.NewAuthService(gdb),
		articles: service.NewArticleService(gdb),
		comments: service.NewCommentService(gdb),
		users:    service.NewUserService(gdb),
		search:   service.NewSearchService(gdb),
		cfg:      cfg,
	}
}

// DB exposes the underlying gorm instance for tests.
func (a *API) DB() *gorm.DB {
	return a.db
}
