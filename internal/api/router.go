package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/yatube/docs"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Options 路由可选组件
type Options struct {
	// Tracing 非空时启用 otelgin
	TracingService string
	Sentry         bool
	Gatherer       prometheus.Gatherer
	RateLimiter    *middleware.RateLimiter
}

// NewRouter 注册全部路由
func NewRouter(h *handler.Handler, authn middleware.Authenticator, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if opts.TracingService != "" {
		r.Use(otelgin.Middleware(opts.TracingService))
	}
	r.Use(middleware.Logger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Auth(authn))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 公开页面
	r.GET("/", h.Index)
	r.GET("/group/:slug", h.GroupPosts)
	r.GET("/profile/:username", h.Profile)
	r.GET("/posts/:id", h.PostDetail)
	r.GET("/groups", h.ListGroups)

	accounts := r.Group("/auth")
	if opts.RateLimiter != nil {
		accounts.Use(opts.RateLimiter.Middleware())
	}
	accounts.POST("/signup", h.SignUp)
	accounts.POST("/login", h.Login)

	// 需要登录
	authed := r.Group("/", middleware.RequireAuth())
	if opts.RateLimiter != nil {
		authed.Use(opts.RateLimiter.Middleware())
	}
	authed.GET("/follow", h.FollowIndex)
	authed.POST("/create", h.CreatePost)
	authed.POST("/posts/:id/edit", h.EditPost)
	authed.POST("/posts/:id/comment", h.AddComment)
	authed.POST("/profile/:username/follow", h.ProfileFollow)
	authed.POST("/profile/:username/unfollow", h.ProfileUnfollow)
	authed.POST("/groups", h.CreateGroup)

	r.NoRoute(func(c *gin.Context) { response.NotFound(c, "page not found") })
	return r
}
