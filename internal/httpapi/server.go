package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"userorders/internal/correlation"
	"userorders/internal/enrich"
	"userorders/internal/models"
)

// OrdersService is what the HTTP layer needs from the aggregation service.
type OrdersService interface {
	OrdersByUserID(ctx context.Context, userID, requestID string) *enrich.Stream[models.UserOrder]
}

// Server exposes the user orders stream over HTTP.
type Server struct {
	svc    OrdersService
	log    *correlation.Logger
	router *gin.Engine
}

// NewServer creates the router. metrics may be nil to skip the /metrics route.
func NewServer(svc OrdersService, metrics http.Handler, logger *correlation.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		svc:    svc,
		log:    logger,
		router: router,
	}

	router.GET("/healthz", s.handleHealth)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	api := router.Group("/userOrdersService")
	{
		api.GET("/user/orders", s.handleUserOrders)
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.router }
