package trek

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"trekking/infras/otel"
	bookingDto "trekking/internal/domains/booking/model/dto"
	"trekking/internal/domains/trek/model/dto"
	"trekking/internal/domains/trek/service"
	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/transport/http/response"
)

const maxPartySize = 50

type Handler struct {
	service service.Trek
	otel    otel.Otel
}

func New(service service.Trek, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/treks", func(r chi.Router) {
		r.Get("/{slug}", handler.GetTrek)
		r.Get("/{slug}/quote", handler.GetQuote)
	})
}

// GetTrek returns a trek with its departures and any data-quality warnings
// @Summary Get a trek
// @Tags Trek
// @Produce json
// @Param slug path string true "Trek slug"
// @Success 200 {object} response.Data[dto.TrekResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/treks/{slug} [get]
func (handler *Handler) GetTrek(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTrek")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	trek, err := handler.service.Get(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("trek", slug).Msg("failed to get trek")

		response.WithError(w, err)

		return
	}

	res := dto.TrekResponse{}
	res.FromModel(trek)

	response.WithJSON(w, http.StatusOK, res)
}

// GetQuote prices a party for a trek, including the deposit split
// @Summary Quote a trek
// @Tags Trek
// @Produce json
// @Param slug path string true "Trek slug"
// @Param party_size query int false "Number of travellers" default(1)
// @Success 200 {object} response.Data[bookingDto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/treks/{slug}/quote [get]
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	partySize := 1

	if raw := r.URL.Query().Get(constant.RequestQueryPartySize); raw != constant.Empty {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPartySize {
			response.WithError(w, failure.BadRequestFromString("party_size must be a whole number between 1 and 50"))

			return
		}

		partySize = size
	}

	quote, trek, err := handler.service.Quote(ctx, slug, partySize)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("trek", slug).Msg("failed to quote trek")

		response.WithError(w, err)

		return
	}

	res := bookingDto.QuoteResponse{}
	res.FromModel(quote, trek.Currency)

	response.WithJSON(w, http.StatusOK, res)
}
