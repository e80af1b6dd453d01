package handler

import "net/http"

type createThreadRequest struct {
	UserID1 string `json:"userId1"`
	UserID2 string `json:"userId2"`
}

type markReadRequest struct {
	UserID string `json:"userId"`
}

type sendMessageRequest struct {
	ThreadID string `json:"threadId"`
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (h *Handlers) ListThreads(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	views, err := h.Messaging.ListThreads(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "threads.list", err, "user_id", userID)
		return
	}

	result := make([]threadResponse, 0, len(views))
	for _, view := range views {
		result = append(result, toThreadViewResponse(view))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateThread(w http.ResponseWriter, r *http.Request) {
	var req createThreadRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	thread, err := h.Messaging.GetOrCreateThread(r.Context(), req.UserID1, req.UserID2)
	if err != nil {
		h.fail(w, r, "threads.create", err, "user_id_1", req.UserID1, "user_id_2", req.UserID2)
		return
	}

	writeJSON(w, http.StatusOK, toThreadResponse(*thread))
}

func (h *Handlers) MarkThreadRead(w http.ResponseWriter, r *http.Request) {
	threadID := pathParam(r, "threadId")

	var req markReadRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	updated, err := h.Messaging.MarkThreadRead(r.Context(), threadID, req.UserID)
	if err != nil {
		h.fail(w, r, "threads.mark_read", err, "thread_id", threadID, "user_id", req.UserID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (h *Handlers) ThreadUnreadCount(w http.ResponseWriter, r *http.Request) {
	threadID := pathParam(r, "threadId")
	userID := queryParam(r, "userId")

	count, err := h.Messaging.UnreadCount(r.Context(), threadID, userID)
	if err != nil {
		h.fail(w, r, "threads.unread", err, "thread_id", threadID, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *Handlers) TotalUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	count, err := h.Messaging.TotalUnread(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "messages.unread_total", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	threadID := pathParam(r, "threadId")

	messages, err := h.Messaging.ListMessages(r.Context(), threadID)
	if err != nil {
		h.fail(w, r, "messages.list", err, "thread_id", threadID)
		return
	}

	result := make([]messageResponse, 0, len(messages))
	for _, message := range messages {
		result = append(result, toMessageResponse(message))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	message, err := h.Messaging.Send(r.Context(), req.ThreadID, req.SenderID, req.Text)
	if err != nil {
		h.fail(w, r, "messages.send", err, "thread_id", req.ThreadID, "sender_id", req.SenderID)
		return
	}

	writeJSON(w, http.StatusCreated, toMessageResponse(*message))
}
