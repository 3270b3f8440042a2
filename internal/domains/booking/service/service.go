package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/booking_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trekking/config"
	"trekking/infras/bookingapi"
	"trekking/infras/otel"
	"trekking/internal/domains/booking/dates"
	"trekking/internal/domains/booking/form"
	"trekking/internal/domains/booking/model/dto"
	"trekking/internal/domains/booking/repository"
	"trekking/internal/domains/booking/validation"
	trekService "trekking/internal/domains/trek/service"
	"trekking/shared"
	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/shared/timezone"
)

var errSignedOut = &failure.Failure{Code: http.StatusUnauthorized, Message: "session expired, please log in again"}

type Booking interface {
	CreateDraft(ctx context.Context, req dto.CreateDraftRequest) (dto.DraftResponse, error)
	GetDraft(ctx context.Context, id string) (dto.DraftResponse, error)
	SelectDeparture(ctx context.Context, id string, req dto.SelectDepartureRequest) (dto.DraftResponse, error)
	SetStartDate(ctx context.Context, id string, req dto.SetStartDateRequest) (dto.DraftResponse, error)
	UpdateLead(ctx context.Context, id string, req dto.UpdateLeadRequest) (dto.DraftResponse, error)
	UpdatePreferences(ctx context.Context, id string, req dto.UpdatePreferencesRequest) (dto.DraftResponse, error)
	SetFlight(ctx context.Context, id string, req dto.SetFlightRequest) (dto.DraftResponse, error)
	IncrementParty(ctx context.Context, id string) (dto.DraftResponse, error)
	DecrementParty(ctx context.Context, id string) (dto.DraftResponse, error)
	SetAcceptance(ctx context.Context, id string, req dto.SetAcceptanceRequest) (dto.DraftResponse, error)
	Submit(ctx context.Context, id string, req dto.SubmitRequest) (dto.DraftResponse, error)
	Validate(ctx context.Context, req dto.ValidateRequest) (dto.ValidationResponse, error)
}

type serviceImpl struct {
	drafts repository.Drafts
	treks  trekService.Trek
	client bookingapi.Client
	cfg    *config.Config
	otel   otel.Otel
	now    func() time.Time
}

func New(drafts repository.Drafts, treks trekService.Trek, client bookingapi.Client, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		drafts: drafts,
		treks:  treks,
		client: client,
		cfg:    cfg,
		otel:   otel,
		now:    timezone.Now,
	}
}

func (s *serviceImpl) CreateDraft(ctx context.Context, req dto.CreateDraftRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	pruned := s.drafts.Prune(ctx, s.now().Add(-s.draftTTL()))
	live := s.drafts.Count(ctx)
	scope.SetAttribute("drafts.live", live)

	if pruned > 0 {
		log.Debug().Int("pruned", pruned).Int("live", live).Msg("pruned idle booking drafts")
	}

	trek, err := s.treks.Get(ctx, req.TrekSlug)
	if err != nil {
		return res, fmt.Errorf("failed to load trek for draft: %w", err)
	}

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	draft := repository.Draft{
		ID:    uuid.NewString(),
		Owner: owner,
		Form: form.New(s.client, trek, form.Options{
			DefaultCountryCode: s.cfg.Booking.DefaultCountryCode,
			LoginPath:          s.cfg.App.LoginPath,
			Clock:              func() time.Time { return s.now() },
		}),
	}

	if err = s.drafts.Insert(ctx, draft); err != nil {
		log.Error().Err(err).Msg("failed to store booking draft")

		return res, fmt.Errorf("failed to store booking draft: %w", err)
	}

	log.Info().Str("draft", draft.ID).Str("trek", trek.Slug).Msg("booking draft created")

	res.FromState(draft.ID, draft.Form.Snapshot())

	return res, nil
}

func (s *serviceImpl) GetDraft(ctx context.Context, id string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.apply(ctx, id, func(*form.Controller) error { return nil })
}

func (s *serviceImpl) SelectDeparture(ctx context.Context, id string, req dto.SelectDepartureRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectDeparture")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.apply(ctx, id, func(f *form.Controller) error {
		dep, ok := f.Snapshot().Trek.FindDeparture(req.DepartureID)
		if !ok {
			return failure.NotFound("departure not found") // nolint:wrapcheck
		}

		return f.SelectDeparture(dep)
	})
}

func (s *serviceImpl) SetStartDate(ctx context.Context, id string, req dto.SetStartDateRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStartDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, err := dates.ParseDate(req.StartDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	return s.apply(ctx, id, func(f *form.Controller) error {
		return f.SetStartDate(start)
	})
}

func (s *serviceImpl) UpdateLead(ctx context.Context, id string, req dto.UpdateLeadRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateLead")
	defer scope.End()
	defer scope.TraceIfError(err)

	changes := req.Changes()
	if len(changes) == 0 {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	return s.apply(ctx, id, func(f *form.Controller) error {
		for _, change := range changes {
			if err := f.ChangeLeadField(change.Name, change.Value); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *serviceImpl) UpdatePreferences(ctx context.Context, id string, req dto.UpdatePreferencesRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePreferences")
	defer scope.End()
	defer scope.TraceIfError(err)

	changes := req.Changes()
	if len(changes) == 0 {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	return s.apply(ctx, id, func(f *form.Controller) error {
		for _, change := range changes {
			if err := f.ChangePreferenceField(change.Name, change.Value); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *serviceImpl) SetFlight(ctx context.Context, id string, req dto.SetFlightRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetFlight")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.apply(ctx, id, func(f *form.Controller) error {
		f.SetFlightTimes(strings.TrimSpace(req.DepartureTime), strings.TrimSpace(req.ReturnTime))

		return nil
	})
}

func (s *serviceImpl) IncrementParty(ctx context.Context, id string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IncrementParty")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.apply(ctx, id, func(f *form.Controller) error {
		f.IncrementParty()

		return nil
	})
}

func (s *serviceImpl) DecrementParty(ctx context.Context, id string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DecrementParty")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.apply(ctx, id, func(f *form.Controller) error {
		f.DecrementParty()

		return nil
	})
}

func (s *serviceImpl) SetAcceptance(ctx context.Context, id string, req dto.SetAcceptanceRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAcceptance")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Accepted == nil {
		return res, failure.BadRequestFromString("accepted is required") // nolint:wrapcheck
	}

	return s.apply(ctx, id, func(f *form.Controller) error {
		f.SetAccepted(*req.Accepted)

		return nil
	})
}

// Submit charges the quote the draft derives itself; a total sent by the browser is never trusted.
// The draft state is returned alongside any error so callers can show the login redirect.
func (s *serviceImpl) Submit(ctx context.Context, id string, req dto.SubmitRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	draft, err := s.draft(ctx, id)
	if err != nil {
		res.LoginRedirect = s.signInAgain(draft, err)

		return res, err
	}

	state := draft.Form.Snapshot()

	currency := req.Currency
	if currency == constant.Empty {
		currency = state.Trek.Currency
	}

	handoff, err := draft.Form.Submit(ctx, form.SubmitRequest{
		TotalPrice: state.Quote.TotalPrice,
		TrekSlug:   state.Trek.Slug,
		Currency:   currency,
	})

	res.FromState(draft.ID, draft.Form.Snapshot())

	if err != nil {
		return res, err
	}

	scope.SetAttribute("booking_ref", handoff.BookingRef)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.treks.Invalidate(c, state.Trek.Slug); err != nil {
			log.Error().Err(err).Str("trek", state.Trek.Slug).Msg("failed to invalidate trek after booking")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Validate(ctx context.Context, req dto.ValidateRequest) (res dto.ValidationResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Validate")
	defer scope.End()
	defer scope.TraceIfError(err)

	var start time.Time
	if req.StartDate != constant.Empty {
		start, err = dates.ParseDate(req.StartDate)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	res.FromModel(validation.Evaluate(req.ToModel(), start, req.PartySize, req.Accepted))

	return res, nil
}

func (s *serviceImpl) apply(ctx context.Context, id string, mutate func(*form.Controller) error) (res dto.DraftResponse, err error) {
	draft, err := s.draft(ctx, id)
	if err != nil {
		res.LoginRedirect = s.signInAgain(draft, err)

		return res, err
	}

	if err = mutate(draft.Form); err != nil {
		return res, err
	}

	res.FromState(draft.ID, draft.Form.Snapshot())

	return res, nil
}

// draft loads a draft the caller may touch. Drafts started by a signed-in user are
// invisible to everyone else, and idle drafts expire.
func (s *serviceImpl) draft(ctx context.Context, id string) (repository.Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return draft, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if draft.Owner != constant.Empty && draft.Owner != user {
		if user == constant.Empty {
			return draft, errSignedOut
		}

		return repository.Draft{}, failure.NotFound("booking draft not found") // nolint:wrapcheck
	}

	if draft.Form.TouchedAt().Before(s.now().Add(-s.draftTTL())) && !draft.Form.Snapshot().Submitting {
		_ = s.drafts.Delete(ctx, id)

		return repository.Draft{}, failure.NotFound("booking draft expired") // nolint:wrapcheck
	}

	return draft, nil
}

// signInAgain is the login redirect for a draft whose owner lost their session, empty for any other error.
func (s *serviceImpl) signInAgain(draft repository.Draft, err error) string {
	if !errors.Is(err, errSignedOut) || draft.Form == nil {
		return constant.Empty
	}

	return shared.LoginRedirect(s.cfg.App.LoginPath, form.ReturnPath(draft.Form.Snapshot().Trek.Slug))
}

func (s *serviceImpl) draftTTL() time.Duration {
	minutes := s.cfg.App.DraftTTLMinutes
	if minutes <= 0 {
		minutes = constant.DefaultDraftTTLMin
	}

	return time.Duration(minutes) * time.Minute
}
