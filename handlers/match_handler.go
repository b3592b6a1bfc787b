package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/authorization"
	application "padel_service/service"
)

type MatchHandler struct {
	service *application.MatchService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewMatchHandler(service *application.MatchService, tracer trace.Tracer, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *MatchHandler) Init(router *mux.Router) {
	router.HandleFunc("/openMatches", handler.GetOpenMatches).Methods(http.MethodGet)
	router.HandleFunc("/openMatches/{id}/join", handler.JoinMatch).Methods(http.MethodPut)
	router.HandleFunc("/openMatches/{id}/cancel", handler.CancelMatch).Methods(http.MethodPut)

	createMatch := router.Methods(http.MethodPost).Subrouter()
	createMatch.HandleFunc("/openMatches", handler.CreateMatch)
	createMatch.Use(handler.MiddlewareMatchDeserialization)
}

func (handler *MatchHandler) GetOpenMatches(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "MatchHandler.GetOpenMatches")
	defer span.End()

	matches, err := handler.service.GetOpen(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(matches, rw)
}

func (handler *MatchHandler) CreateMatch(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "MatchHandler.CreateMatch")
	defer span.End()

	userId, err := authorization.UserIDFromRequest(h)
	if err != nil {
		http.Error(rw, "unauthorized", http.StatusUnauthorized)
		return
	}

	request := h.Context().Value(KeyProduct{}).(*application.MatchRequest)
	request.CreatorId = userId

	match, err := handler.service.Create(ctx, request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warnf("open match rejected: %v", err)
		writeError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(match, rw)
}

func (handler *MatchHandler) JoinMatch(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "MatchHandler.JoinMatch")
	defer span.End()

	userId, err := authorization.UserIDFromRequest(h)
	if err != nil {
		http.Error(rw, "unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(h)
	if err := handler.service.Join(ctx, vars["id"], userId); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func (handler *MatchHandler) CancelMatch(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "MatchHandler.CancelMatch")
	defer span.End()

	userId, err := authorization.UserIDFromRequest(h)
	if err != nil {
		http.Error(rw, "unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(h)
	if err := handler.service.Cancel(ctx, vars["id"], userId); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func (handler *MatchHandler) MiddlewareMatchDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		request := &application.MatchRequest{}
		err := request.FromJSON(h.Body)
		if err != nil {
			handler.logger.Error("Unable to decode json: ", err)
			http.Error(rw, "Unable to decode json", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(h.Context(), KeyProduct{}, request)
		h = h.WithContext(ctx)

		next.ServeHTTP(rw, h)
	})
}
