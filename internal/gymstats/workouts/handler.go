package workouts

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	CreateWorkout(ctx context.Context, userID string, in NewWorkout) (*Workout, error)
	DeleteWorkout(ctx context.Context, userID string, workoutID int64) error
	ListWorkouts(ctx context.Context, userID string) ([]Workout, error)
}

type DeleteWorkoutResponse struct {
	DeletedID int64 `json:"deletedId"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newWorkout NewWorkout
	if err := json.NewDecoder(r.Body).Decode(&newWorkout); err != nil {
		log.Tracef("new workout, unmarshal json: %s", err)
		apperr.WriteHTTP(w, "create workout", apperr.Validationf("invalid workout payload: %s", err))
		return
	}

	workout, err := handler.service.CreateWorkout(ctx, auth.UserID(ctx), newWorkout)
	if err != nil {
		apperr.WriteHTTP(w, "create workout", err)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	list, err := handler.service.ListWorkouts(ctx, auth.UserID(ctx))
	if err != nil {
		apperr.WriteHTTP(w, "list workouts", err)
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteWorkout(ctx, auth.UserID(ctx), id); err != nil {
		apperr.WriteHTTP(w, "delete workout", err)
		return
	}

	pkg.WriteJSON(w, DeleteWorkoutResponse{DeletedID: id}, http.StatusOK)
}
