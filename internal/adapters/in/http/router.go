package http

import (
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerSwagger sync.Once

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

// NewRouter builds the echo instance: API routes validated against doc, the
// health check, the raw document and the swagger UI.
func NewRouter(s *Server, doc *openapi3.T) (*echo.Echo, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc(raw))
	})

	validator, err := s.requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.DebugContext(c.Request().Context(), "Request handled",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String())
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, raw)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", s.authenticate, validator)
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderId", s.GetOrderSummary)
	v1.POST("/orders/:orderId/pancakes", s.AddPancakes)
	v1.GET("/orders/:orderId/status", s.GetOrderStatus)
	v1.POST("/orders/:orderId/complete", s.CompleteOrder)
	v1.POST("/orders/:orderId/cancel", s.CancelOrder)
	v1.GET("/kitchen/orders", s.GetKitchenOrders)
	v1.GET("/delivery/orders", s.GetDeliveryOrders)
	v1.GET("/delivery/assignments", s.GetDeliveryAssignments)
	v1.POST("/delivery/orders/:orderId/delivered", s.ConfirmDelivery)

	return e, nil
}
