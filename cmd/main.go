package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/duccv/auth-service/config"
	"github.com/duccv/auth-service/internal/auth"
	"github.com/duccv/auth-service/internal/handler"
	"github.com/duccv/auth-service/internal/user"
	"github.com/duccv/auth-service/pkg/database"
	"github.com/duccv/auth-service/pkg/logger"
	http_server "github.com/duccv/auth-service/pkg/server/http"
	"go.uber.org/zap"

	_ "github.com/duccv/auth-service/docs"
)

//	@title			AUTH SERVICE APIs
//	@version		1.0
//	@description	Credential issuance and verification service Swagger APIs.
//	@termsOfService	http://swagger.io/terms/
//	@contact.name	DucCV
//	@contact.email	duccv@gviet.vn

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				JWT authorization header
func main() {
	env := config.GetEnv()

	zapLogger := logger.GetLogger(env.LoggerConfig)
	zap.ReplaceGlobals(zapLogger)
	defer zapLogger.Sync()

	factory := database.NewDatabaseFactory()
	db, err := factory.CreateDatabase("users", &env.DatabaseConfig)
	if err != nil {
		zap.L().Fatal("Database connection failed", zap.Error(err))
	}
	defer factory.CloseAll()

	if db.GetType() == database.PostgreSQL {
		if err := database.RunMigrations(context.Background(), &env.DatabaseConfig.PostgresConfig); err != nil {
			zap.L().Fatal("Database migration failed", zap.Error(err))
		}
	}

	store, err := user.NewStore(db)
	if err != nil {
		zap.L().Fatal("User store initialization failed", zap.Error(err))
	}

	tokens := auth.NewTokenManager([]byte(env.JWTConfig.Secret), env.JWTConfig.TTL)
	service := auth.NewService(store, tokens)
	authHandler := handler.NewAuthHandler(service)

	srv := http_server.New(env, authHandler, tokens,
		http_server.Port(strconv.Itoa(env.AppConfig.Port)))
	srv.Start()

	zap.L().Info("Server started", zap.Int("port", env.AppConfig.Port))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		zap.L().Info("Shutting down", zap.String("signal", s.String()))
	case err := <-srv.Notify():
		zap.L().Error("Server error", zap.Error(err))
	}

	if err := srv.Shutdown(); err != nil {
		zap.L().Error("Server shutdown failed", zap.Error(err))
	}
}
