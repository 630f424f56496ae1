package http

import (
	"log/slog"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Prakash9019/my-cricket-reg-app/internal/handler/http/middleware"
	"github.com/Prakash9019/my-cricket-reg-app/internal/usecase"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

// RouterOptions carries the cross-cutting settings of the HTTP surface.
type RouterOptions struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	// TrustProxyHeaders lets X-Forwarded-For and X-Real-IP decide the client
	// address. Leave it off unless a trusted proxy overwrites those headers.
	TrustProxyHeaders bool
	Logger             *slog.Logger
	RequestDuration    *prometheus.HistogramVec
	MetricsGatherer    prometheus.Gatherer
}

type Router struct {
	playerHandler *PlayerHandler
	healthHandler *HealthHandler
	jwtService    usecase.JWTService
	opts          RouterOptions
}

func NewRouter(playerUsecase usecasecontract.IPlayerUseCase, jwtService usecase.JWTService, startedAt time.Time, opts RouterOptions) *Router {
	return &Router{
		playerHandler: NewPlayerHandler(playerUsecase),
		healthHandler: NewHealthHandler(playerUsecase, startedAt),
		jwtService:    jwtService,
		opts:          opts,
	}
}

// ipLookups lists where the rate limiter reads the client address from.
// Tollbooth stops at the first usable source.
func ipLookups(trustProxyHeaders bool) []string {
	if trustProxyHeaders {
		return []string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"}
	}
	return []string{"RemoteAddr"}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	if !r.opts.TrustProxyHeaders {
		_ = router.SetTrustedProxies(nil)
	}

	allowAll := len(r.opts.AllowedOrigins) == 0 || (len(r.opts.AllowedOrigins) == 1 && r.opts.AllowedOrigins[0] == "*")
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = r.opts.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	if r.opts.Logger != nil {
		router.Use(middleware.RequestLogger(r.opts.Logger))
	}
	if r.opts.RequestDuration != nil {
		router.Use(middleware.RequestDuration(r.opts.RequestDuration))
	}

	// rate limiter configuration
	if r.opts.RateLimitPerSecond > 0 {
		lmt := tollbooth.NewLimiter(r.opts.RateLimitPerSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
		lmt.SetIPLookups(ipLookups(r.opts.TrustProxyHeaders))
		lmt.SetMessage(`{"success":false,"error":"Too many requests, please try again later."}`)
		lmt.SetMessageContentType("application/json; charset=utf-8")
		router.Use(middleware.RateLimiter(lmt))
	}

	router.GET("/health", r.healthHandler.Health)
	if r.opts.MetricsGatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.opts.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		api.GET("/sequence", r.playerHandler.GetSequence)
		api.GET("/stats", r.playerHandler.GetStats)
	}

	players := api.Group("/players")
	{
		players.POST("/register", r.playerHandler.RegisterPlayer)
		players.POST("/login", r.playerHandler.Login)
		players.GET("", r.playerHandler.ListPlayers)
		players.GET("/me", middleware.AuthMiddleWare(r.jwtService), r.playerHandler.GetCurrentPlayer)
		players.GET("/:id", r.playerHandler.GetPlayer)
		players.GET("/:id/export", r.playerHandler.ExportPlayer)
	}
}
