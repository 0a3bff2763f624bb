package order

import (
	"database/sql"

	"go.uber.org/zap"

	"grillhouse/internal/order/controller"
	"grillhouse/internal/order/repository"
	"grillhouse/internal/order/service"
)

func NewModule(db *sql.DB, broadcaster service.Broadcaster, logger *zap.Logger) *controller.OrderController {
	repo := repository.NewSQLiteOrderRepository(db)
	svc := service.NewOrderService(repo, broadcaster, logger)
	return controller.NewOrderController(svc, logger)
}
