package records

import (
	"context"
	"net/http"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=records_test

type summariesService interface {
	ProfileSummaries(ctx context.Context, userID string) ([]Summary, error)
}

type Handler struct {
	service summariesService
}

func NewHandler(service summariesService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.list")
	defer span.End()

	summaries, err := handler.service.ProfileSummaries(ctx, auth.UserID(ctx))
	if err != nil {
		apperr.WriteHTTP(w, "list records", err)
		return
	}

	pkg.WriteJSON(w, summaries, http.StatusOK)
}
