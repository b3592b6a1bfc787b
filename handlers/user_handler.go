package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/authorization"
	application "padel_service/service"
)

type UserHandler struct {
	service *application.UserService
	tracer  trace.Tracer
}

func NewUserHandler(service *application.UserService, tracer trace.Tracer) *UserHandler {
	return &UserHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *UserHandler) Init(router *mux.Router) {
	router.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", handler.UpdateProfile).Methods(http.MethodPut)
	router.HandleFunc("/users/{id}/assessment", handler.CompleteAssessment).Methods(http.MethodPost)
}

func (handler *UserHandler) GetUser(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "UserHandler.GetUser")
	defer span.End()

	vars := mux.Vars(h)
	user, err := handler.service.Get(ctx, vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(user, rw)
}

// CompleteAssessment is the profile-setup step: it stores the playing-style
// answers and the one-time numeric rating derived from them.
func (handler *UserHandler) CompleteAssessment(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "UserHandler.CompleteAssessment")
	defer span.End()

	vars := mux.Vars(h)
	if !requestIsForSelf(h, vars["id"]) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	var request application.AssessmentRequest
	if err := json.NewDecoder(h.Body).Decode(&request); err != nil {
		http.Error(rw, "Unable to decode json", http.StatusBadRequest)
		return
	}

	user, err := handler.service.CompleteAssessment(ctx, vars["id"], &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(user, rw)
}

func (handler *UserHandler) UpdateProfile(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "UserHandler.UpdateProfile")
	defer span.End()

	vars := mux.Vars(h)
	if !requestIsForSelf(h, vars["id"]) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	var update application.ProfileUpdate
	if err := json.NewDecoder(h.Body).Decode(&update); err != nil {
		http.Error(rw, "Unable to decode json", http.StatusBadRequest)
		return
	}

	user, err := handler.service.UpdateProfile(ctx, vars["id"], &update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(user, rw)
}

// Each session may only mutate documents scoped to its own identity.
func requestIsForSelf(h *http.Request, id string) bool {
	userId, err := authorization.UserIDFromRequest(h)
	return err == nil && userId == id
}
