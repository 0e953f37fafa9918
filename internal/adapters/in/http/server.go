package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server translates HTTP requests into commands and queries. The caller always comes
// from the verified token, never from the request body.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	caller, orderID, err := s.callerAndID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body reasonRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, caller, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReActivateOrder handles POST /api/v1/orders/:orderId/reactivate.
func (s *Server) ReActivateOrder(c echo.Context) error {
	caller, orderID, err := s.callerAndID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReActivateOrderCommand(orderID, caller)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.ReActivateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReOrder handles POST /api/v1/orders/:orderId/reorder.
func (s *Server) ReOrder(c echo.Context) error {
	caller, orderID, err := s.callerAndID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReOrderCommand(orderID, kernel.NewUUID(), caller)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.handlers.ReOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	status := http.StatusCreated
	if result.Reactivated {
		status = http.StatusOK
	}
	return c.JSON(status, reorderResponse{OrderID: result.OrderID.String(), Reactivated: result.Reactivated})
}

// CancelItem handles POST /api/v1/order-details/:detailId/cancel.
func (s *Server) CancelItem(c echo.Context) error {
	caller, detailID, err := s.callerAndID(c, "detailId")
	if err != nil {
		return s.fail(c, err)
	}
	var body reasonRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCancelItemCommand(detailID, caller, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.CancelItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReturnItem handles POST /api/v1/orders/:orderId/details/:detailId/return.
func (s *Server) ReturnItem(c echo.Context) error {
	caller, orderID, err := s.callerAndID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	detailID, err := kernel.UUIDFromString(c.Param("detailId"))
	if err != nil {
		return s.fail(c, err)
	}
	var body reasonRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewReturnItemCommand(orderID, detailID, caller, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.ReturnItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RecomputeShipped handles POST /api/v1/orders/shipped/recompute. Orders that could
// not be saved are listed in the response next to the repaired ones.
func (s *Server) RecomputeShipped(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	cmd, err := commands.NewRecomputeShippedStatusCommand(caller)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.handlers.RecomputeShipped.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	if failErr := result.Err(); failErr != nil {
		s.logger.WarnContext(c.Request().Context(), "Shipped status not saved for some orders",
			"caller", caller.ID(),
			"failed", len(result.Failures),
			"error", failErr,
		)
	}
	return c.JSON(http.StatusOK, newRecomputeResponse(result))
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	query, err := queries.NewGetCustomerOrdersQuery(caller.ID())
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.handlers.CustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newCustomerOrders(orders))
}

// SetProcessed handles PUT /api/v1/seller/order-details/:detailId/processed.
func (s *Server) SetProcessed(c echo.Context) error {
	caller, detailID, err := s.callerAndID(c, "detailId")
	if err != nil {
		return s.fail(c, err)
	}
	var body processedRequest
	if err = c.Bind(&body); err != nil || body.Processed == nil {
		return badRequest(c, "Field processed is required")
	}

	cmd, err := commands.NewToggleProcessedCommand(detailID, caller, *body.Processed)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.ToggleProcessed.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetShipped handles PUT /api/v1/seller/orders/:orderId/shipped.
func (s *Server) SetShipped(c echo.Context) error {
	caller, orderID, err := s.callerAndID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body shippedRequest
	if err = c.Bind(&body); err != nil || body.Shipped == nil {
		return badRequest(c, "Field shipped is required")
	}

	cmd, err := commands.NewChangeShippedStatusCommand(orderID, caller, *body.Shipped)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.ChangeShippedStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SellerCancelItem handles POST /api/v1/seller/order-details/:detailId/cancel.
func (s *Server) SellerCancelItem(c echo.Context) error {
	caller, detailID, err := s.callerAndID(c, "detailId")
	if err != nil {
		return s.fail(c, err)
	}
	var body reasonRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSellerCancelOrderDetailCommand(detailID, caller, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.SellerCancelItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSellerOrderDetails handles GET /api/v1/seller/order-details?status=&limit=&offset=.
func (s *Server) GetSellerOrderDetails(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var (
		rawStatus     string
		limit, offset int
	)
	if err := echo.QueryParamsBinder(c).
		String("status", &rawStatus).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError(); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	status := order.Unknown
	if rawStatus != "" {
		parsed, err := order.ParseStatus(rawStatus)
		if err != nil {
			return s.fail(c, err)
		}
		status = parsed
	}

	query, err := queries.NewGetSellerOrderDetailsQuery(caller.ID(), status, limit, offset)
	if err != nil {
		return s.fail(c, err)
	}
	details, err := s.handlers.SellerOrderDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newSellerDetails(details))
}

func (s *Server) callerAndID(c echo.Context, param string) (order.Caller, kernel.UUID, error) {
	caller, ok := callerFrom(c)
	if !ok {
		return order.Caller{}, kernel.UUID{}, errMissingCaller
	}
	id, err := kernel.UUIDFromString(c.Param(param))
	if err != nil {
		return order.Caller{}, kernel.UUID{}, err
	}
	return caller, id, nil
}

func (s *Server) fail(c echo.Context, err error) error {
	if errors.Is(err, errMissingCaller) {
		return unauthorized(c)
	}
	return writeError(c, s.logger, err)
}
