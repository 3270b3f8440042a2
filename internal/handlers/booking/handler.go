package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"trekking/infras/otel"
	"trekking/internal/domains/booking/model/dto"
	"trekking/internal/domains/booking/service"
	"trekking/shared/constant"
	"trekking/shared/validator"
	"trekking/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/validate", handler.Validate)
		routerGroup.Post("/drafts", handler.CreateDraft)

		routerGroup.Route("/drafts/{id}", func(draft chi.Router) {
			draft.Get("/", handler.GetDraft)
			draft.Put("/departure", handler.SelectDeparture)
			draft.Put("/start-date", handler.SetStartDate)
			draft.Patch("/lead", handler.UpdateLead)
			draft.Patch("/preferences", handler.UpdatePreferences)
			draft.Put("/flight", handler.SetFlight)
			draft.Post("/travellers/increment", handler.IncrementParty)
			draft.Post("/travellers/decrement", handler.DecrementParty)
			draft.Put("/acceptance", handler.SetAcceptance)
			draft.Post("/submit", handler.Submit)
		})
	})
}

// Validate checks lead traveller details without a draft.
// @Summary Validate lead traveller details
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.ValidateRequest true "Validate Request"
// @Success 200 {object} response.Data[dto.ValidationResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bookings/validate [post]
func (handler *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Validate")
	defer scope.End()

	req := dto.ValidateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Validate(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateDraft starts a booking attempt for a trek.
// @Summary Start a booking draft
// @Description Drafts started while signed in are only visible to the same user. Idle drafts expire.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateDraftRequest true "Create Draft Request"
// @Success 201 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/drafts [post]
// @Security BearerAuth
func (handler *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDraft")
	defer scope.End()

	req := dto.CreateDraftRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateDraft(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("trek", req.TrekSlug).Msg("failed to create booking draft")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking draft created")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetDraft returns the current state of a draft.
// @Summary Get a booking draft
// @Tags Booking
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 401 {object} response.LoginRequired
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id} [get]
func (handler *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDraft")
	defer scope.End()

	res, err := handler.service.GetDraft(ctx, chi.URLParam(r, constant.RequestParamID))

	writeDraft(w, scope, res, err)
}

// SelectDeparture picks one of the trek's scheduled departures.
// @Summary Select a departure
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param request body dto.SelectDepartureRequest true "Select Departure Request"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/departure [put]
func (handler *Handler) SelectDeparture(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectDeparture")
	defer scope.End()

	req := dto.SelectDepartureRequest{}
	if !decode(w, r, scope, &req) {
		return
	}

	res, err := handler.service.SelectDeparture(ctx, chi.URLParam(r, constant.RequestParamID), req)

	writeDraft(w, scope, res, err)
}

// SetStartDate sets a custom start date; the end date follows from the trek duration.
// @Summary Set a custom start date
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param request body dto.SetStartDateRequest true "Set Start Date Request"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/start-date [put]
func (handler *Handler) SetStartDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStartDate")
	defer scope.End()

	req := dto.SetStartDateRequest{}
	if !decode(w, r, scope, &req) {
		return
	}

	res, err := handler.service.SetStartDate(ctx, chi.URLParam(r, constant.RequestParamID), req)

	writeDraft(w, scope, res, err)
}

// UpdateLead changes the lead traveller fields present in the body.
// @Summary Update lead traveller
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param request body dto.UpdateLeadRequest true "Update Lead Request"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/lead [patch]
func (handler *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLead")
	defer scope.End()

	req := dto.UpdateLeadRequest{}
	if !decode(w, r, scope, &req) {
		return
	}

	res, err := handler.service.UpdateLead(ctx, chi.URLParam(r, constant.RequestParamID), req)

	writeDraft(w, scope, res, err)
}

// UpdatePreferences changes the trip preferences present in the body.
// @Summary Update trip preferences
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param request body dto.UpdatePreferencesRequest true "Update Preferences Request"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/preferences [patch]
func (handler *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePreferences")
	defer scope.End()

	req := dto.UpdatePreferencesRequest{}
	if !decode(w, r, scope, &req) {
		return
	}

	res, err := handler.service.UpdatePreferences(ctx, chi.URLParam(r, constant.RequestParamID), req)

	writeDraft(w, scope, res, err)
}

// SetFlight stores optional flight times.
// @Summary Set flight times
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param request body dto.SetFlightRequest true "Set Flight Request"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/flight [put]
func (handler *Handler) SetFlight(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetFlight")
	defer scope.End()

	req := dto.SetFlightRequest{}
	if !decode(w, r, scope, &req) {
		return
	}

	res, err := handler.service.SetFlight(ctx, chi.URLParam(r, constant.RequestParamID), req)

	writeDraft(w, scope, res, err)
}

// IncrementParty adds a traveller.
// @Summary Add a traveller
// @Tags Booking
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/travellers/increment [post]
func (handler *Handler) IncrementParty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IncrementParty")
	defer scope.End()

	res, err := handler.service.IncrementParty(ctx, chi.URLParam(r, constant.RequestParamID))

	writeDraft(w, scope, res, err)
}

// DecrementParty removes a traveller; the party never drops below one.
// @Summary Remove a traveller
// @Tags Booking
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/travellers/decrement [post]
func (handler *Handler) DecrementParty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DecrementParty")
	defer scope.End()

	res, err := handler.service.DecrementParty(ctx, chi.URLParam(r, constant.RequestParamID))

	writeDraft(w, scope, res, err)
}

// SetAcceptance records whether the terms were accepted.
// @Summary Accept the terms
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param request body dto.SetAcceptanceRequest true "Set Acceptance Request"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/drafts/{id}/acceptance [put]
func (handler *Handler) SetAcceptance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetAcceptance")
	defer scope.End()

	req := dto.SetAcceptanceRequest{}
	if !decode(w, r, scope, &req) {
		return
	}

	res, err := handler.service.SetAcceptance(ctx, chi.URLParam(r, constant.RequestParamID), req)

	writeDraft(w, scope, res, err)
}

// Submit creates the booking intent and then the booking, and hands over to payment.
// @Summary Submit a booking draft
// @Description The total charged is the draft's own quote. A second submit while one is running is rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param request body dto.SubmitRequest false "Submit Request"
// @Success 200 {object} response.Data[dto.DraftResponse]
// @Failure 400 {object} response.ErrorWithData[dto.DraftResponse]
// @Failure 401 {object} response.LoginRequired
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.ErrorWithData[dto.DraftResponse]
// @Failure 502 {object} response.ErrorWithData[dto.DraftResponse]
// @Router /v1/bookings/drafts/{id}/submit [post]
// @Security BearerAuth
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	req := dto.SubmitRequest{}
	if r.ContentLength != 0 && !decode(w, r, scope, &req) {
		return
	}

	res, err := handler.service.Submit(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err == nil && res.Handoff != nil {
		scope.AddEvent("Booking created " + res.Handoff.BookingRef)
	}

	writeDraft(w, scope, res, err)
}

func decode[T any](w http.ResponseWriter, r *http.Request, scope otel.Scope, req *T) bool {
	if err := validator.Validate(r.Body, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return false
	}

	return true
}

// writeDraft answers with the draft. Failures that left a draft behind still carry it,
// so the page can show what went wrong next to the form.
func writeDraft(w http.ResponseWriter, scope otel.Scope, res dto.DraftResponse, err error) {
	if err == nil {
		response.WithJSON(w, http.StatusOK, res)

		return
	}

	scope.TraceError(err)

	switch {
	case res.LoginRedirect != constant.Empty:
		log.Warn().Err(err).Str("draft", res.ID).Msg("booking draft needs a new login")

		response.WithLoginRedirect(w, err, res.LoginRedirect)
	case res.ID != constant.Empty:
		log.Error().Err(err).Str("draft", res.ID).Msg("booking draft operation failed")

		response.WithErrorData(w, err, res)
	default:
		log.Error().Err(err).Msg("booking draft operation failed")

		response.WithError(w, err)
	}
}
