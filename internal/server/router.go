package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"grillhouse/internal/auth"
	authcontroller "grillhouse/internal/auth/controller"
	"grillhouse/internal/broadcast"
	"grillhouse/internal/config"
	"grillhouse/internal/domain"
	menucontroller "grillhouse/internal/menu/controller"
	ordercontroller "grillhouse/internal/order/controller"
)

func NewRouter(
	orderCtrl *ordercontroller.OrderController,
	menuCtrl *menucontroller.MenuController,
	authCtrl *authcontroller.AuthController,
	authMW *auth.Middleware,
	hub *broadcast.Hub,
	cfg config.BroadcastConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	requireAdmin := authMW.RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authCtrl.Login)
			r.Post("/logout", authCtrl.Logout)
			r.Get("/session", authCtrl.Session)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menuCtrl.List)
			r.Get("/{id}", menuCtrl.Get)
			r.With(requireAdmin).Post("/", menuCtrl.Create)
			r.With(requireAdmin).Put("/{id}", menuCtrl.Update)
			r.With(requireAdmin).Delete("/{id}", menuCtrl.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.PlaceOrder)
			r.Get("/{id}", orderCtrl.GetOrder)
			r.With(requireAdmin).Get("/", orderCtrl.ListOrders)
			r.With(requireAdmin).Put("/{id}/status", orderCtrl.ChangeStatus)
		})
	})

	r.Get("/ws", liveHandler(hub, cfg, logger))

	return r
}

// liveHandler upgrades the request to a websocket and keeps the connection
// registered with the hub until the client goes away. The read loop exists
// only to detect disconnection; clients never send application data.
func liveHandler(hub *broadcast.Hub, cfg config.BroadcastConfig, logger *zap.Logger) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		conn := broadcast.NewWSConn(ws, cfg.SendBuffer, cfg.WriteTimeout)
		hub.Register(conn)
		logger.Info("live client connected", zap.String("remote", r.RemoteAddr))

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(conn)
		conn.Close()
		logger.Info("live client disconnected", zap.String("remote", r.RemoteAddr))
	}
}
