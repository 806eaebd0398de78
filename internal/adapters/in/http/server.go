// Package http exposes the delivery workflow over a thin echo API.
// Handlers translate requests into commands and queries; all business rules
// stay behind the application layer.
package http

import (
	"errors"
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createParcelHandler  commands.CreateParcelCommandHandler
	changeStatusHandler  commands.ChangeParcelStatusCommandHandler
	cancelParcelHandler  commands.CancelParcelCommandHandler
	confirmHandler       commands.ConfirmDeliveryCommandHandler
	assignCourierHandler commands.AssignCourierCommandHandler
	blockParcelHandler   commands.BlockParcelCommandHandler
	unblockParcelHandler commands.UnblockParcelCommandHandler
	deleteParcelHandler  commands.DeleteParcelCommandHandler

	// Query handlers
	trackingHistoryHandler    queries.GetTrackingHistoryQueryHandler
	undeliveredParcelsHandler queries.GetUndeliveredParcelsQueryHandler
	trackParcelHandler        queries.TrackParcelQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	changeStatusHandler commands.ChangeParcelStatusCommandHandler,
	cancelParcelHandler commands.CancelParcelCommandHandler,
	confirmHandler commands.ConfirmDeliveryCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	blockParcelHandler commands.BlockParcelCommandHandler,
	unblockParcelHandler commands.UnblockParcelCommandHandler,
	deleteParcelHandler commands.DeleteParcelCommandHandler,
	trackingHistoryHandler queries.GetTrackingHistoryQueryHandler,
	undeliveredParcelsHandler queries.GetUndeliveredParcelsQueryHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:       createParcelHandler,
		changeStatusHandler:       changeStatusHandler,
		cancelParcelHandler:       cancelParcelHandler,
		confirmHandler:            confirmHandler,
		assignCourierHandler:      assignCourierHandler,
		blockParcelHandler:        blockParcelHandler,
		unblockParcelHandler:      unblockParcelHandler,
		deleteParcelHandler:       deleteParcelHandler,
		trackingHistoryHandler:    trackingHistoryHandler,
		undeliveredParcelsHandler: undeliveredParcelsHandler,
		trackParcelHandler:        trackParcelHandler,
	}
}

// RegisterRoutes wires the API onto the echo instance.
// The tracking lookup is public; all other parcel routes require an
// authenticated actor.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.GET("/health", s.Health)
	e.GET("/api/v1/track/:trackingId", s.TrackParcel)

	api := e.Group("/api/v1", ActorAuth(jwtSecret))
	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels/undelivered", s.GetUndeliveredParcels)
	api.GET("/parcels/:id/history", s.GetTrackingHistory)
	api.PATCH("/parcels/:id/status", s.ChangeParcelStatus)
	api.POST("/parcels/:id/cancel", s.CancelParcel)
	api.POST("/parcels/:id/confirm", s.ConfirmDelivery)
	api.POST("/parcels/:id/agents", s.AssignCourier)
	api.POST("/parcels/:id/block", s.BlockParcel)
	api.POST("/parcels/:id/unblock", s.UnblockParcel)
	api.DELETE("/parcels/:id", s.DeleteParcel)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateParcel handles POST /api/v1/parcels - the sender books a parcel.
func (s *Server) CreateParcel(ctx echo.Context) error {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var req createParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	pickup, err := addressFromPayload(req.PickupAddress)
	if err != nil {
		return respondError(ctx, err)
	}
	delivery, err := addressFromPayload(req.DeliveryAddress)
	if err != nil {
		return respondError(ctx, err)
	}
	class, err := parcel.ShippingClassFromString(req.ShippingClass)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(
		parcelID, actorID, req.RecipientEmail,
		pickup, delivery, req.WeightKg, class, req.Fee,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createParcelResponse{ID: parcelID.String()})
}

// ChangeParcelStatus handles PATCH /api/v1/parcels/:id/status - the generic
// transition request.
func (s *Server) ChangeParcelStatus(ctx echo.Context) error {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid parcel id")
	}

	var req changeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	requested, err := parcel.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	var location *kernel.Address
	if req.Location != nil {
		addr, addrErr := addressFromPayload(*req.Location)
		if addrErr != nil {
			return respondError(ctx, addrErr)
		}
		location = &addr
	}

	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, actorID, requested, location, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelParcel handles POST /api/v1/parcels/:id/cancel - sender cancellation.
func (s *Server) CancelParcel(ctx echo.Context) error {
	return s.handleNoteAction(ctx, func(parcelID, actorID kernel.UUID, note string) (func() error, error) {
		cmd, err := commands.NewCancelParcelCommand(parcelID, actorID, note)
		if err != nil {
			return nil, err
		}
		return func() error { return s.cancelParcelHandler.Handle(ctx.Request().Context(), cmd) }, nil
	})
}

// ConfirmDelivery handles POST /api/v1/parcels/:id/confirm - the recipient
// confirms an in-transit parcel as delivered.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	return s.handleNoteAction(ctx, func(parcelID, actorID kernel.UUID, note string) (func() error, error) {
		cmd, err := commands.NewConfirmDeliveryCommand(parcelID, actorID, note)
		if err != nil {
			return nil, err
		}
		return func() error { return s.confirmHandler.Handle(ctx.Request().Context(), cmd) }, nil
	})
}

// BlockParcel handles POST /api/v1/parcels/:id/block - administrative hold.
func (s *Server) BlockParcel(ctx echo.Context) error {
	return s.handleNoteAction(ctx, func(parcelID, actorID kernel.UUID, note string) (func() error, error) {
		cmd, err := commands.NewBlockParcelCommand(parcelID, actorID, note)
		if err != nil {
			return nil, err
		}
		return func() error { return s.blockParcelHandler.Handle(ctx.Request().Context(), cmd) }, nil
	})
}

// UnblockParcel handles POST /api/v1/parcels/:id/unblock - releases a hold.
func (s *Server) UnblockParcel(ctx echo.Context) error {
	return s.handleNoteAction(ctx, func(parcelID, actorID kernel.UUID, note string) (func() error, error) {
		cmd, err := commands.NewUnblockParcelCommand(parcelID, actorID, note)
		if err != nil {
			return nil, err
		}
		return func() error { return s.unblockParcelHandler.Handle(ctx.Request().Context(), cmd) }, nil
	})
}

// AssignCourier handles POST /api/v1/parcels/:id/agents - attaches a delivery agent.
func (s *Server) AssignCourier(ctx echo.Context) error {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid parcel id")
	}

	var req assignAgentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agent id")
	}

	cmd, err := commands.NewAssignCourierCommand(parcelID, actorID, agentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteParcel handles DELETE /api/v1/parcels/:id - removes a cancelled parcel.
func (s *Server) DeleteParcel(ctx echo.Context) error {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid parcel id")
	}

	cmd, err := commands.NewDeleteParcelCommand(parcelID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTrackingHistory handles GET /api/v1/parcels/:id/history.
func (s *Server) GetTrackingHistory(ctx echo.Context) error {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid parcel id")
	}

	query, err := queries.NewGetTrackingHistoryQuery(parcelID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	history, err := s.trackingHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := trackingHistoryResponse{
		ID:                history.ID.String(),
		TrackingID:        history.TrackingID,
		Status:            history.Status.String(),
		EstimatedDelivery: history.EstimatedDelivery,
		Entries:           make([]trackingEntryPayload, len(history.Entries)),
	}
	for i, entry := range history.Entries {
		response.Entries[i] = trackingEntryPayload{
			Status:  entry.Status.String(),
			Note:    entry.Note,
			ActorID: entry.ActorID.String(),
			At:      entry.At,
		}
		if entry.Location != nil {
			payload := addressToPayload(*entry.Location)
			response.Entries[i].Location = &payload
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TrackParcel handles GET /api/v1/track/:trackingId - the public tracking
// lookup by the customer-facing tracking identifier.
func (s *Server) TrackParcel(ctx echo.Context) error {
	trackingID, err := kernel.TrackingIDFromString(ctx.Param("trackingId"))
	if err != nil {
		return badRequest(ctx, "invalid tracking id")
	}

	query, err := queries.NewTrackParcelQuery(trackingID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := trackParcelResponse{
		TrackingID:        view.TrackingID,
		Status:            view.Status.String(),
		EstimatedDelivery: view.EstimatedDelivery,
		Entries:           make([]trackEntryPayload, len(view.Entries)),
	}
	for i, entry := range view.Entries {
		response.Entries[i] = trackEntryPayload{
			Status: entry.Status.String(),
			Note:   entry.Note,
			At:     entry.At,
		}
		if entry.Location != nil {
			payload := addressToPayload(*entry.Location)
			response.Entries[i].Location = &payload
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUndeliveredParcels handles GET /api/v1/parcels/undelivered.
func (s *Server) GetUndeliveredParcels(ctx echo.Context) error {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	query, err := queries.NewGetUndeliveredParcelsQuery(actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	parcels, err := s.undeliveredParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]undeliveredParcelPayload, len(parcels))
	for i, p := range parcels {
		response[i] = undeliveredParcelPayload{
			ID:                p.ID.String(),
			TrackingID:        p.TrackingID,
			Status:            p.Status.String(),
			SenderID:          p.SenderID.String(),
			RecipientID:       p.RecipientID.String(),
			EstimatedDelivery: p.EstimatedDelivery,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// handleNoteAction factors the shared shape of the parcel actions that take
// an optional note body.
func (s *Server) handleNoteAction(
	ctx echo.Context,
	build func(parcelID, actorID kernel.UUID, note string) (func() error, error),
) error {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid parcel id")
	}

	var req noteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	run, err := build(parcelID, actorID, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = run(); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// respondError maps application and domain errors onto HTTP statuses.
// Transition rejections include the allowed-next list in the body.
func respondError(ctx echo.Context, err error) error {
	var transitionErr *parcel.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		allowed := make([]string, len(transitionErr.Allowed))
		for i, status := range transitionErr.Allowed {
			allowed[i] = status.String()
		}
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:        http.StatusBadRequest,
			Message:     transitionErr.Error(),
			AllowedNext: allowed,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, parcel.ErrParcelNotInTransit),
		errors.Is(err, parcel.ErrParcelNotCancelled),
		errors.Is(err, parcel.ErrAgentAssignmentNotAllowed),
		errors.Is(err, commands.ErrParcelIsNotBlocked),
		errors.Is(err, services.ErrCancellationStageClosed),
		errors.Is(err, account.ErrAccountNotEligibleAgent),
		errors.Is(err, account.ErrAccountNotEligibleRecipient):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, errorResponse{
		Code:    http.StatusUnauthorized,
		Message: "authentication required",
	})
}

func addressFromPayload(payload addressPayload) (kernel.Address, error) {
	return kernel.NewAddress(payload.Street, payload.City, payload.State, payload.PostalCode, payload.Country)
}

func addressToPayload(address kernel.Address) addressPayload {
	return addressPayload{
		Street:     address.Street(),
		City:       address.City(),
		State:      address.State(),
		PostalCode: address.PostalCode(),
		Country:    address.Country(),
	}
}
