package menu

import (
	"database/sql"

	"go.uber.org/zap"

	"grillhouse/internal/menu/controller"
	"grillhouse/internal/menu/repository"
	"grillhouse/internal/menu/service"
)

func NewModule(db *sql.DB, broadcaster service.Broadcaster, logger *zap.Logger) *controller.MenuController {
	repo := repository.NewSQLiteMenuRepository(db)
	svc := service.NewMenuService(repo, broadcaster, logger)
	return controller.NewMenuController(svc, logger)
}
