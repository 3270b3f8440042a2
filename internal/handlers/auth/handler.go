package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"trekking/infras/otel"
	"trekking/internal/domains/auth/model/dto"
	"trekking/internal/domains/auth/service"
	"trekking/shared/constant"
	"trekking/shared/validator"
	"trekking/transport/http/response"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", handler.CreateSession)
		r.Delete("/", handler.DeleteSession)
	})
}

// CreateSession stores a booking API token behind a session id
// @Summary Start a session
// @Description Store the access token issued by the booking service and return a session id for the X-Session-ID header.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Create Session Request"
// @Success 201 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions [post]
func (handler *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSession")
	defer scope.End()

	req := dto.CreateSessionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateSession(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session created")

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteSession forgets the token behind the X-Session-ID header
// @Summary End a session
// @Tags Session
// @Produce json
// @Param X-Session-ID header string true "Session id"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions [delete]
func (handler *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSession")
	defer scope.End()

	if err := handler.service.DeleteSession(ctx, r.Header.Get(constant.RequestHeaderSessionID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete session")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Session ended")
}
