package auth

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"grillhouse/internal/auth/controller"
	"grillhouse/internal/auth/repository"
	"grillhouse/internal/auth/service"
)

func NewModule(db *sql.DB, sessionTTL time.Duration, logger *zap.Logger) (*controller.AuthController, *Middleware) {
	repo := repository.NewSQLiteUserRepository(db)
	svc := service.NewAuthService(repo, sessionTTL, logger)
	return controller.NewAuthController(svc, logger), NewMiddleware(svc)
}
