package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"legalai-review/internal/ai"
	appsvc "legalai-review/internal/app"
	"legalai-review/internal/bootstrap"
	"legalai-review/internal/cache"
	"legalai-review/internal/platform/rabbitmq"
	"legalai-review/internal/repository"
	"legalai-review/internal/transport/http/handler"
	"legalai-review/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userRepo := repository.NewUserRepository(app.DB)
	analysisRepo := repository.NewAnalysisRepository(app.DB)

	var historyCache appsvc.HistoryCache
	if app.Redis != nil {
		historyCache = cache.NewHistoryCache(
			app.Redis,
			time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
			time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
		)
	}
	var publisher appsvc.AuditPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewAuditPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)
	}
	var archive appsvc.ArchiveStore
	if app.ObjStore != nil {
		archive = app.ObjStore
	}

	completer := ai.NewOpenAIClient(ai.ClientConfig{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.Model,
	})

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	analysisService := appsvc.NewAnalysisService(
		analysisRepo,
		app.Sessions,
		completer,
		historyCache,
		publisher,
		archive,
		ai.PromptVariant(app.Config.LLM.Variant),
		app.Config.LLM.MaxDocumentChars,
	)
	reviewService := appsvc.NewReviewService(app.Sessions, completer, app.Config.LLM.MaxDocumentChars)

	authHandler := handler.NewAuthHandler(authService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	analysisGroup := v1.Group("/analyses")
	analysisGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	analysisGroup.POST("", analysisHandler.Create)
	analysisGroup.GET("", analysisHandler.List)
	analysisGroup.GET("/lookup", analysisHandler.Lookup)
	analysisGroup.GET("/:id", analysisHandler.Get)
	analysisGroup.GET("/:id/export", analysisHandler.Export)

	reviewGroup := v1.Group("/review")
	reviewGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	reviewGroup.POST("/questions", reviewHandler.Ask)
	reviewGroup.GET("/transcript", reviewHandler.Transcript)
	reviewGroup.DELETE("/session", reviewHandler.EndSession)

	return router
}
