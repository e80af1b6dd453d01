package handler

import (
	"net/http"

	eventsdomain "family-connect-go/internal/domain/events"
)

type eventRequest struct {
	UserID      string  `json:"userId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
}

func (req eventRequest) input() eventsdomain.EventInput {
	return eventsdomain.EventInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
}

type attendRequest struct {
	UserID string `json:"userId"`
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	includePast := parseBoolParam(queryParam(r, "includePast"), false)

	events, err := h.Events.List(r.Context(), includePast)
	if err != nil {
		h.fail(w, r, "events.list", err)
		return
	}

	result := make([]eventResponse, 0, len(events))
	for _, event := range events {
		result = append(result, toEventViewResponse(event))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	event, err := h.Events.Create(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, "events.create", err, "user_id", req.UserID)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(*event))
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := pathParam(r, "id")

	event, err := h.Events.Get(r.Context(), eventID)
	if err != nil {
		h.fail(w, r, "events.get", err, "event_id", eventID)
		return
	}

	writeJSON(w, http.StatusOK, toEventViewResponse(*event))
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := pathParam(r, "id")

	var req eventRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	event, err := h.Events.Update(r.Context(), eventID, req.input())
	if err != nil {
		h.fail(w, r, "events.update", err, "event_id", eventID, "user_id", req.UserID)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*event))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := pathParam(r, "id")
	userID := queryParam(r, "userId")

	if err := h.Events.Delete(r.Context(), eventID, userID); err != nil {
		h.fail(w, r, "events.delete", err, "event_id", eventID, "user_id", userID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AttendEvent(w http.ResponseWriter, r *http.Request) {
	eventID := pathParam(r, "id")

	var req attendRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	if err := h.Events.Attend(r.Context(), eventID, req.UserID); err != nil {
		h.fail(w, r, "events.attend", err, "event_id", eventID, "user_id", req.UserID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UnattendEvent(w http.ResponseWriter, r *http.Request) {
	eventID := pathParam(r, "id")
	userID := pathParam(r, "userId")

	if err := h.Events.Unattend(r.Context(), eventID, userID); err != nil {
		h.fail(w, r, "events.unattend", err, "event_id", eventID, "user_id", userID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := pathParam(r, "id")

	attendees, err := h.Events.ListAttendees(r.Context(), eventID)
	if err != nil {
		h.fail(w, r, "events.attendees", err, "event_id", eventID)
		return
	}

	result := make([]attendeeResponse, 0, len(attendees))
	for _, attendee := range attendees {
		result = append(result, attendeeResponse{
			UserID:     attendee.UserID,
			User:       toUserResponsePtr(attendee.User),
			AttendedAt: attendee.AttendedAt,
		})
	}
	writeJSON(w, http.StatusOK, result)
}
