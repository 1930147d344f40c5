package http_server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/duccv/auth-service/config"
	"github.com/duccv/auth-service/internal/auth"
	"github.com/duccv/auth-service/internal/handler"
	"github.com/duccv/auth-service/internal/middleware"
	"github.com/duccv/auth-service/internal/model"
	"github.com/duccv/auth-service/internal/validation"
	"github.com/duccv/auth-service/pkg/metrics"

	_ "github.com/duccv/auth-service/docs"
)

// HealthCheck godoc
//
//	@Summary		Health Check
//	@Description	Returns status 200 if the service is running
//	@Tags			Health
//	@Produce		plain
//	@Success		200	{string}	string	"OK"
//	@Router			/health [get]

type Server struct {
	App    *gin.Engine
	notify chan error

	address string
	timeout time.Duration
}

// New assembles the gin engine with the auth routes mounted.
func New(env *config.Env, authHandler *handler.AuthHandler, tokens *auth.TokenManager, opts ...Option) *Server {
	s := &Server{
		App:     nil,
		notify:  make(chan error, 1),
		address: _defaultAddr,
		timeout: _defaultTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.App = s.initGinServer(env, authHandler, tokens)

	return s
}

func timeoutResponse(c *gin.Context) {
	c.String(http.StatusRequestTimeout, "timeout")
}
func timeoutMiddleware(to time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(to),
		timeout.WithResponse(timeoutResponse),
	)
}

func (s *Server) initGinServer(env *config.Env, authHandler *handler.AuthHandler, tokens *auth.TokenManager) *gin.Engine {

	pathPrefix := env.AppConfig.PathPrefix
	if pathPrefix == "" {
		pathPrefix = "/api"
	}
	if env.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationIDMiddleware())

	logging := middleware.NewLoggingMiddleware(middleware.DefaultMiddlewareConfig())
	r.Use(logging.RequestLogger())
	r.Use(logging.SecurityLogger())
	r.Use(timeoutMiddleware(s.timeout))

	if env.MetricsConfig.Enabled {
		m := metrics.GetMonitor(env.MetricsConfig.Path)
		m.Use(r)
	}

	if env.CORSConfig.Enabled {
		corsConfig := cors.Config{
			AllowOrigins:     env.CORSConfig.AllowedOrigins,
			AllowMethods:     env.CORSConfig.AllowedMethods,
			AllowHeaders:     env.CORSConfig.AllowedHeaders,
			ExposeHeaders:    env.CORSConfig.ExposedHeaders,
			AllowCredentials: env.CORSConfig.AllowCredentials,
			MaxAge:           time.Duration(env.CORSConfig.MaxAge) * time.Second,
		}

		r.Use(cors.New(corsConfig))
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.AbortWithStatusJSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET(pathPrefix+"/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	authGroup := r.Group(pathPrefix + "/v1/auth")
	{
		authGroup.POST("/register",
			validation.ValidateBody[model.RegisterRequest](),
			authHandler.Register)
		authGroup.POST("/login",
			validation.ValidateBody[model.LoginRequest](),
			authHandler.Login)
		// identity extraction runs before the handler
		authGroup.GET("/me",
			middleware.VerifyBearerToken(tokens),
			authHandler.Me)
	}

	return r
}

// Start -.
func (s *Server) Start() {
	go func() {
		s.notify <- s.App.Run(s.address)
		close(s.notify)
	}()
}

// Notify -.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown -.
func (s *Server) Shutdown() error {
	return nil
}
