package leaderboard

import (
	"context"
	"net/http"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

type leaderboardService interface {
	Leaderboard(ctx context.Context) ([]Entry, error)
}

type Handler struct {
	service leaderboardService
}

func NewHandler(service leaderboardService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.get")
	defer span.End()

	entries, err := handler.service.Leaderboard(ctx)
	if err != nil {
		apperr.WriteHTTP(w, "get leaderboard", err)
		return
	}

	pkg.WriteJSON(w, entries, http.StatusOK)
}
