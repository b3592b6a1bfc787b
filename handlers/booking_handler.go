package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/authorization"
	application "padel_service/service"
)

type BookingHandler struct {
	service *application.BookingService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewBookingHandler(service *application.BookingService, tracer trace.Tracer, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *BookingHandler) Init(router *mux.Router) {
	router.HandleFunc("/courts/{id}/availability", handler.GetAvailability).Methods(http.MethodGet)
	router.HandleFunc("/bookings", handler.GetUserBookings).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{id}/cancel", handler.CancelBooking).Methods(http.MethodPut)

	createBooking := router.Methods(http.MethodPost).Subrouter()
	createBooking.HandleFunc("/bookings", handler.CreateBooking)
	createBooking.Use(handler.MiddlewareBookingDeserialization)
}

// GetAvailability answers with the bookable start hours for
// ?date=2006-01-02&duration=90. An empty array means a fully booked day,
// which is not an error.
func (handler *BookingHandler) GetAvailability(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.GetAvailability")
	defer span.End()

	vars := mux.Vars(h)
	courtId := vars["id"]

	date, err := time.Parse("2006-01-02", h.URL.Query().Get("date"))
	if err != nil {
		http.Error(rw, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	duration, err := strconv.Atoi(h.URL.Query().Get("duration"))
	if err != nil {
		http.Error(rw, "Invalid duration", http.StatusBadRequest)
		return
	}

	hours, err := handler.service.GetAvailableSlots(ctx, courtId, date, duration)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(hours, rw)
}

func (handler *BookingHandler) CreateBooking(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.CreateBooking")
	defer span.End()

	userId, err := authorization.UserIDFromRequest(h)
	if err != nil {
		http.Error(rw, "unauthorized", http.StatusUnauthorized)
		return
	}

	request := h.Context().Value(KeyProduct{}).(*application.BookingRequest)
	request.UserId = userId

	booking, err := handler.service.CreateBooking(ctx, request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warnf("booking rejected: %v", err)
		writeError(rw, err)
		return
	}

	handler.logger.Infof("booking %s created for court %s at %d:00", booking.ID.Hex(), booking.CourtId, booking.StartTime)
	rw.WriteHeader(http.StatusCreated)
	jsonResponse(booking, rw)
}

func (handler *BookingHandler) GetUserBookings(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.GetUserBookings")
	defer span.End()

	userId, err := authorization.UserIDFromRequest(h)
	if err != nil {
		http.Error(rw, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookings, err := handler.service.GetUserBookings(ctx, userId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	jsonResponse(bookings, rw)
}

func (handler *BookingHandler) CancelBooking(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.CancelBooking")
	defer span.End()

	userId, err := authorization.UserIDFromRequest(h)
	if err != nil {
		http.Error(rw, "unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(h)
	if err := handler.service.CancelBooking(ctx, vars["id"], userId); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func (handler *BookingHandler) MiddlewareBookingDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		request := &application.BookingRequest{}
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
