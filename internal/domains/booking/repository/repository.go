package repository

import (
	"context"
	"sync"
	"time"

	"trekking/infras/otel"
	"trekking/internal/domains/booking/form"
	"trekking/internal/domains/booking/model"
	"trekking/shared/constant"
	"trekking/shared/failure"
)

const otelScopeName = "repository"

// Draft is one booking attempt in progress. Owner is the user id of whoever started it, if known.
type Draft struct {
	ID    string
	Owner string
	Form  *form.Controller
}

type Drafts interface {
	Insert(ctx context.Context, draft Draft) error
	Get(ctx context.Context, id string) (Draft, error)
	Delete(ctx context.Context, id string) error
	Prune(ctx context.Context, idleSince time.Time) int
	Count(ctx context.Context) int
}

// repositoryImpl keeps drafts in process memory; they do not survive a restart.
type repositoryImpl struct {
	mu     sync.RWMutex
	drafts map[string]Draft
	otel   otel.Otel
}

func New(otel otel.Otel) Drafts {
	return &repositoryImpl{
		drafts: make(map[string]Draft),
		otel:   otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, draft Draft) (err error) {
	_, scope := r.otel.NewScope(ctx, otelScopeName, otelScopeName+".InsertDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	if draft.ID == constant.Empty || draft.Form == nil {
		return failure.BadRequestFromString("draft id and form are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[draft.ID]; ok {
		return failure.Conflict("booking draft already exists")
	}

	r.drafts[draft.ID] = draft

	return nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (res Draft, err error) {
	_, scope := r.otel.NewScope(ctx, otelScopeName, otelScopeName+".GetDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.drafts[id]
	if !ok {
		return res, failure.NotFound(model.EntityName + " draft not found")
	}

	return res, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	_, scope := r.otel.NewScope(ctx, otelScopeName, otelScopeName+".DeleteDraft")
	defer scope.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, id)

	return nil
}

// Prune drops drafts nobody touched since idleSince and returns how many were dropped.
// Drafts with a submission in flight are kept.
func (r *repositoryImpl) Prune(ctx context.Context, idleSince time.Time) int {
	_, scope := r.otel.NewScope(ctx, otelScopeName, otelScopeName+".PruneDrafts")
	defer scope.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0

	for id, draft := range r.drafts {
		if draft.Form.TouchedAt().Before(idleSince) && !draft.Form.Snapshot().Submitting {
			delete(r.drafts, id)

			pruned++
		}
	}

	scope.SetAttribute("pruned", pruned)

	return pruned
}

func (r *repositoryImpl) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.drafts)
}
