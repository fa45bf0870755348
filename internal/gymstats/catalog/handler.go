package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

type catalogService interface {
	List(ctx context.Context, userID string) ([]Exercise, error)
	Add(ctx context.Context, userID, name string) (*Exercise, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type DeleteExerciseResponse struct {
	DeletedID int64 `json:"deletedId"`
}

type Handler struct {
	service catalogService
}

func NewHandler(service catalogService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.list")
	defer span.End()

	list, err := handler.service.List(ctx, auth.UserID(ctx))
	if err != nil {
		apperr.WriteHTTP(w, "list catalog", err)
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req NewExercise
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add catalog exercise, unmarshal json: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	ex, err := handler.service.Add(ctx, auth.UserID(ctx), req.Name)
	if err != nil {
		apperr.WriteHTTP(w, "add catalog exercise", err)
		return
	}

	pkg.WriteJSON(w, ex, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.delete")
	defer span.End()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, auth.UserID(ctx), id); err != nil {
		apperr.WriteHTTP(w, "delete catalog exercise", err)
		return
	}

	pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}
