// Package http is the REST interface of the pancake house. Every handler
// passes the caller named in the X-User-Name header to the gated use cases,
// which authenticate and authorize it.
package http

import (
	"log/slog"
	"net/http"

	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/application/usecases/delivery"
	"pancakehouse/internal/core/application/usecases/kitchen"
	"pancakehouse/internal/core/application/usecases/ordering"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// UserHeader carries the caller's name.
const UserHeader = "X-User-Name"

// Server handles the HTTP requests by delegating to the use cases.
type Server struct {
	auth     access.Authenticator
	workflow ordering.Workflow
	kitchen  kitchen.Desk
	delivery delivery.Desk
	logger   *slog.Logger
}

func NewServer(
	authenticator access.Authenticator,
	workflow ordering.Workflow,
	kitchenDesk kitchen.Desk,
	deliveryDesk delivery.Desk,
	logger *slog.Logger,
) *Server {
	return &Server{
		auth:     authenticator,
		workflow: workflow,
		kitchen:  kitchenDesk,
		delivery: deliveryDesk,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body DeliveryInfo
	if err := c.Bind(&body); err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	info, err := kernel.NewDeliveryInfo(body.Room, body.Building)
	if err != nil {
		return s.writeError(c, err)
	}

	id, err := s.workflow.CreateOrder(c.Request().Context(), caller(c), info)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, OrderRef{ID: id.String()})
}

// AddPancakes handles POST /api/v1/orders/{orderId}/pancakes.
func (s *Server) AddPancakes(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var body AddPancakes
	if err = c.Bind(&body); err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	if err = s.workflow.AddPancakes(c.Request().Context(), caller(c), id, body.Items.toDomain()); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetOrderSummary handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrderSummary(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	items, err := s.workflow.OrderSummary(c.Request().Context(), caller(c), id)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderSummary{ID: id.String(), Items: itemsFromDomain(items)})
}

// GetOrderStatus handles GET /api/v1/orders/{orderId}/status.
func (s *Server) GetOrderStatus(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	status, err := s.workflow.Status(c.Request().Context(), caller(c), id)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderStatus{ID: id.String(), Status: status.String()})
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.workflow.Complete(c.Request().Context(), caller(c), id); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.workflow.Cancel(c.Request().Context(), caller(c), id); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetKitchenOrders handles GET /api/v1/kitchen/orders.
func (s *Server) GetKitchenOrders(c echo.Context) error {
	tickets, err := s.kitchen.ViewOrders(c.Request().Context(), caller(c))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, ticketsFromDomain(tickets))
}

// GetDeliveryOrders handles GET /api/v1/delivery/orders.
func (s *Server) GetDeliveryOrders(c echo.Context) error {
	tickets, err := s.delivery.ViewCompletedOrders(c.Request().Context(), caller(c))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, ticketsFromDomain(tickets))
}

// GetDeliveryAssignments handles GET /api/v1/delivery/assignments.
func (s *Server) GetDeliveryAssignments(c echo.Context) error {
	ids, err := s.delivery.ViewAssignedOrders(c.Request().Context(), caller(c))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, idsFromDomain(ids))
}

// ConfirmDelivery handles POST /api/v1/delivery/orders/{orderId}/delivered.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.delivery.ConfirmDelivery(c.Request().Context(), caller(c), id); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// authenticate rejects unknown callers before the request is looked at any
// further, so they get 401 whatever the body holds. The use cases still run
// their own gates.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := s.auth.Authenticate(caller(c)); err != nil {
			return s.writeError(c, err)
		}
		return next(c)
	}
}

// caller turns the header into a principal. A missing name yields the zero
// User, which the authentication gate rejects.
func caller(c echo.Context) user.User {
	principal, err := user.NewPrincipal(c.Request().Header.Get(UserHeader))
	if err != nil {
		return user.User{}
	}
	return principal
}

func orderID(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return kernel.UUIDFromGoogle(id)
}
