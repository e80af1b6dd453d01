package handler

import (
	"net/http"

	moderationdomain "family-connect-go/internal/domain/moderation"
	"family-connect-go/internal/transport/httpserver/middleware"
)

type blockRequest struct {
	BlockedUserID string `json:"blockedUserId"`
}

type createReportRequest struct {
	ReporterID     string  `json:"reporterId"`
	ReportedUserID string  `json:"reportedUserId"`
	Reason         string  `json:"reason"`
	Details        *string `json:"details"`
}

type reportStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	var req blockRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	block, err := h.Moderation.Block(r.Context(), userID, req.BlockedUserID)
	if err != nil {
		h.fail(w, r, "blocks.create", err, "user_id", userID, "blocked_user_id", req.BlockedUserID)
		return
	}

	writeJSON(w, http.StatusOK, toBlockResponse(*block))
}

func (h *Handlers) UnblockUser(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")
	blockedUserID := pathParam(r, "blockedUserId")

	if err := h.Moderation.Unblock(r.Context(), userID, blockedUserID); err != nil {
		h.fail(w, r, "blocks.delete", err, "user_id", userID, "blocked_user_id", blockedUserID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListBlockedUsers(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	blocked, err := h.Moderation.ListBlocked(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "blocks.list", err, "user_id", userID)
		return
	}

	result := make([]blockResponse, 0, len(blocked))
	for _, item := range blocked {
		resp := toBlockResponse(item.Block)
		resp.BlockedUser = toUserResponsePtr(item.User)
		result = append(result, resp)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	report, err := h.Moderation.Report(r.Context(), moderationdomain.ReportInput{
		ReporterID:     req.ReporterID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Details:        req.Details,
	})
	if err != nil {
		h.fail(w, r, "reports.create", err, "reporter_id", req.ReporterID, "reported_user_id", req.ReportedUserID)
		return
	}

	writeJSON(w, http.StatusCreated, toReportResponse(*report))
}

func (h *Handlers) AdminListReports(w http.ResponseWriter, r *http.Request) {
	status := queryParam(r, "status")

	reports, err := h.Moderation.ListReports(r.Context(), status)
	if err != nil {
		h.fail(w, r, "admin.reports.list", err, "status", status)
		return
	}

	result := make([]reportResponse, 0, len(reports))
	for _, view := range reports {
		resp := toReportResponse(view.Report)
		resp.Reporter = toUserResponsePtr(view.Reporter)
		resp.ReportedUser = toUserResponsePtr(view.Reported)
		result = append(result, resp)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) AdminUpdateReport(w http.ResponseWriter, r *http.Request) {
	reportID := pathParam(r, "id")

	var req reportStatusRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	report, err := h.Moderation.SetReportStatus(r.Context(), reportID, req.Status)
	if err != nil {
		h.fail(w, r, "admin.reports.update", err, "report_id", reportID, "status", req.Status)
		return
	}
	if admin, ok := middleware.UserFromContext(r.Context()); ok {
		h.logFor(r.Context()).Info("admin: report status changed", "report_id", report.ID, "status", report.Status, "admin_id", admin.ID)
	}

	writeJSON(w, http.StatusOK, toReportResponse(*report))
}

func (h *Handlers) AdminListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.Moderation.ListBlocks(r.Context())
	if err != nil {
		h.fail(w, r, "admin.blocks.list", err)
		return
	}

	result := make([]blockResponse, 0, len(blocks))
	for _, view := range blocks {
		resp := toBlockResponse(view.Block)
		resp.Blocker = toUserResponsePtr(view.Blocker)
		resp.BlockedUser = toUserResponsePtr(view.Blocked)
		result = append(result, resp)
	}
	writeJSON(w, http.StatusOK, result)
}
