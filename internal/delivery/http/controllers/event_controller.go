package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gatherplan/internal/delivery/http/helpers"
	"gatherplan/internal/domain"
)

// CandidateDatetime is one proposed slot in a create request.
type CandidateDatetime struct {
	DateTime time.Time `json:"datetime" validate:"required"`
}

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	StationName        string              `json:"station_name" validate:"required,max=100"`
	CandidateDatetimes []CandidateDatetime `json:"candidate_datetimes" validate:"required,min=1,max=3,dive"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// CreateEventSuccessResponse is the success response envelope for POST /api/events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.EventCreated `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /api/events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.EventDetail `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// AvailabilityInput is one participant status. DateTime is informational;
// statuses are matched to slots by position.
type AvailabilityInput struct {
	DateTime *time.Time `json:"datetime,omitempty"`
	Status   string     `json:"status" validate:"required,oneof=AVAILABLE UNAVAILABLE MAYBE"`
}

// AddParticipantRequest is the request body for POST /api/events/{eventID}/participants.
type AddParticipantRequest struct {
	Token          string              `json:"token" validate:"required"`
	Availabilities []AvailabilityInput `json:"availabilities" validate:"required,min=1,max=3,dive"`
	Comment        *string             `json:"comment,omitempty"`
}

// Validate implements Validator.
func (a AddParticipantRequest) Validate() []string {
	return helpers.ValidateStruct(a)
}

// AddParticipantResponse is the data of a successful participant submission.
type AddParticipantResponse struct {
	ParticipantID string `json:"participant_id"`
}

// AddParticipantSuccessResponse is the success response envelope for POST /api/events/{eventID}/participants (201).
type AddParticipantSuccessResponse struct {
	Data  AddParticipantResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

const eventNotFoundMessage = "event not found or invalid token"

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event at a station with 1-3 candidate date-times. Returns the event id and both access tokens; they are not retrievable later.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Station and candidate date-times"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains event_id, organizer_token, participant_token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	slots := make([]time.Time, len(req.CandidateDatetimes))
	for i, cd := range req.CandidateDatetimes {
		slots[i] = cd.DateTime
	}
	created, err := c.Service.CreateEvent(r.Context(), req.StationName, slots)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetEvent godoc
// @Summary Get an event with availability and venue recommendations
// @Description Returns candidate slots with AVAILABLE counts, participant responses and five recommended venues. A missing event and a wrong token give the same 404.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param token query string true "Participant or organizer token"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event detail"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	token := r.URL.Query().Get("token")
	detail, err := c.Service.GetEventDetail(r.Context(), eventID, token)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// AddParticipant godoc
// @Summary Submit a participant response
// @Description Records one status per candidate slot, in slot order, plus an optional comment. Requires the participant token.
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param response body AddParticipantRequest true "Token, availabilities and comment"
// @Success 201 {object} controllers.AddParticipantSuccessResponse "data contains participant_id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID}/participants [post]
func (c *EventController) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	statuses := make([]domain.SlotStatus, len(req.Availabilities))
	for i, a := range req.Availabilities {
		statuses[i] = domain.SlotStatus(a.Status)
	}
	id, err := c.Service.AddParticipant(r.Context(), r.PathValue("eventID"), req.Token, statuses, req.Comment)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, AddParticipantResponse{ParticipantID: id})
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, eventNotFoundMessage)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
