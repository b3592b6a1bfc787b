package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	application "padel_service/service"
)

type FacilityHandler struct {
	service *application.FacilityService
	tracer  trace.Tracer
}

func NewFacilityHandler(service *application.FacilityService, tracer trace.Tracer) *FacilityHandler {
	return &FacilityHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *FacilityHandler) Init(router *mux.Router) {
	router.HandleFunc("/facilities", handler.GetAllFacilities).Methods(http.MethodGet)
	router.HandleFunc("/facilities/{id}", handler.GetFacility).Methods(http.MethodGet)
	router.HandleFunc("/facilities/{id}/courts", handler.GetCourts).Methods(http.MethodGet)
}

func (handler *FacilityHandler) GetAllFacilities(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "FacilityHandler.GetAllFacilities")
	defer span.End()

	facilities, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(facilities, rw)
}

func (handler *FacilityHandler) GetFacility(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "FacilityHandler.GetFacility")
	defer span.End()

	vars := mux.Vars(h)
	facility, err := handler.service.Get(ctx, vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(facility, rw)
}

func (handler *FacilityHandler) GetCourts(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "FacilityHandler.GetCourts")
	defer span.End()

	vars := mux.Vars(h)
	courts, err := handler.service.GetCourts(ctx, vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(courts, rw)
}
