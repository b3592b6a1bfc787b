package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	application "padel_service/service"
)

type AuthHandler struct {
	service *application.AuthService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewAuthHandler(service *application.AuthService, tracer trace.Tracer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/confirm", handler.Confirm).Methods(http.MethodPost)
}

func (handler *AuthHandler) Register(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AuthHandler.Register")
	defer span.End()

	var request application.RegisterRequest
	if err := json.NewDecoder(h.Body).Decode(&request); err != nil {
		http.Error(rw, "Unable to decode json", http.StatusBadRequest)
		return
	}

	userId, err := handler.service.Register(ctx, &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warnf("registration failed: %v", err)
		writeError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(map[string]string{"userId": userId}, rw)
}

func (handler *AuthHandler) Login(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AuthHandler.Login")
	defer span.End()

	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(h.Body).Decode(&credentials); err != nil {
		http.Error(rw, "Unable to decode json", http.StatusBadRequest)
		return
	}

	response, err := handler.service.Login(ctx, credentials.Email, credentials.Password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(response, rw)
}

func (handler *AuthHandler) Confirm(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "AuthHandler.Confirm")
	defer span.End()

	var validation application.AccountConfirmation
	if err := json.NewDecoder(h.Body).Decode(&validation); err != nil {
		http.Error(rw, "Unable to decode json", http.StatusBadRequest)
		return
	}

	if err := handler.service.AccountConfirmation(ctx, &validation); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}
