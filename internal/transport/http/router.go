package rest

import (
	"net/http"

	"github.com/Gunvolt24/order_intake/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — gin с middleware и маршрутами сервиса.
// otelService пустой — трейсинг HTTP не подключается.
func NewRouter(h *Handler, otelService string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelService != "" {
		r.Use(otelgin.Middleware(otelService))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	order := r.Group("/order")
	order.POST("/submit", h.submitOrder)
	order.GET("/status/:id", h.getOrderStatus)

	r.NoRoute(func(c *gin.Context) { httpx.AbortWithMessage(c, http.StatusNotFound, "Not found") })
	r.NoMethod(func(c *gin.Context) { httpx.AbortWithMessage(c, http.StatusMethodNotAllowed, "Method not allowed") })

	return r
}
