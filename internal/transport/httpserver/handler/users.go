package handler

import (
	"net/http"

	userdomain "family-connect-go/internal/domain/user"
)

type updateProfileRequest struct {
	FamilyName *string   `json:"familyName"`
	Bio        *string   `json:"bio"`
	AvatarURL  *string   `json:"avatarUrl"`
	Suburb     *string   `json:"suburb"`
	City       *string   `json:"city"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	RadiusKm   *int      `json:"radiusKm"`
	Interests  *[]string `json:"interests"`
}

type familyMemberRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

type memberEnvelope struct {
	Member familyMemberResponse `json:"member"`
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	user, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "users.get", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	var req updateProfileRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), userdomain.UpdateProfileInput{
		UserID:     userID,
		FamilyName: req.FamilyName,
		Bio:        req.Bio,
		AvatarURL:  req.AvatarURL,
		Suburb:     req.Suburb,
		City:       req.City,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		RadiusKm:   req.RadiusKm,
		Interests:  req.Interests,
	})
	if err != nil {
		h.fail(w, r, "users.update", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *Handlers) ListFamilyMembers(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	members, err := h.Users.ListFamilyMembers(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "family_members.list", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toFamilyMemberResponses(members))
}

func (h *Handlers) AddFamilyMember(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	var req familyMemberRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	member, err := h.Users.AddFamilyMember(r.Context(), userID, userdomain.FamilyMemberInput{Name: req.Name, Age: req.Age})
	if err != nil {
		h.fail(w, r, "family_members.add", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, memberEnvelope{Member: toFamilyMemberResponse(*member)})
}

func (h *Handlers) UpdateFamilyMember(w http.ResponseWriter, r *http.Request) {
	memberID := pathParam(r, "id")

	var req familyMemberRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	member, err := h.Users.UpdateFamilyMember(r.Context(), memberID, userdomain.FamilyMemberInput{Name: req.Name, Age: req.Age})
	if err != nil {
		h.fail(w, r, "family_members.update", err, "member_id", memberID)
		return
	}

	writeJSON(w, http.StatusOK, memberEnvelope{Member: toFamilyMemberResponse(*member)})
}

func (h *Handlers) RemoveFamilyMember(w http.ResponseWriter, r *http.Request) {
	memberID := pathParam(r, "id")

	if err := h.Users.RemoveFamilyMember(r.Context(), memberID); err != nil {
		h.fail(w, r, "family_members.remove", err, "member_id", memberID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
