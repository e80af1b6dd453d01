package handler

import "net/http"

type createConnectionRequest struct {
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
}

type respondConnectionRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

func (h *Handlers) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	views, err := h.Connections.ListFor(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "connections.list", err, "user_id", userID)
		return
	}

	result := make([]connectionResponse, 0, len(views))
	for _, view := range views {
		result = append(result, toConnectionViewResponse(view))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateConnection(w http.ResponseWriter, r *http.Request) {
	var req createConnectionRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	connection, err := h.Connections.Request(r.Context(), req.UserID, req.TargetUserID)
	if err != nil {
		h.fail(w, r, "connections.create", err, "user_id", req.UserID, "target_user_id", req.TargetUserID)
		return
	}

	writeJSON(w, http.StatusCreated, toConnectionResponse(*connection))
}

func (h *Handlers) RespondConnection(w http.ResponseWriter, r *http.Request) {
	connectionID := pathParam(r, "id")

	var req respondConnectionRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	connection, err := h.Connections.Respond(r.Context(), connectionID, req.UserID, req.Status)
	if err != nil {
		h.fail(w, r, "connections.respond", err, "connection_id", connectionID, "user_id", req.UserID, "status", req.Status)
		return
	}

	writeJSON(w, http.StatusOK, toConnectionResponse(*connection))
}

func (h *Handlers) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	connectionID := pathParam(r, "id")
	userID := queryParam(r, "userId")

	if err := h.Connections.Delete(r.Context(), connectionID, userID); err != nil {
		h.fail(w, r, "connections.delete", err, "connection_id", connectionID, "user_id", userID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
