package handler

import "net/http"

type candidateResponse struct {
	userResponse
	Distance      *float64               `json:"distance"`
	FamilyMembers []familyMemberResponse `json:"familyMembers"`
}

func (h *Handlers) Discover(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	candidates, err := h.Discovery.Discover(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "discover.list", err, "user_id", userID)
		return
	}

	result := make([]candidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		result = append(result, candidateResponse{
			userResponse:  toUserResponse(candidate.User),
			Distance:      candidate.DistanceKm,
			FamilyMembers: toFamilyMemberResponses(candidate.FamilyMembers),
		})
	}

	writeJSON(w, http.StatusOK, result)
}
