package handler

import (
	"net/http"

	listingsdomain "family-connect-go/internal/domain/listings"
)

type businessRequest struct {
	UserID      string  `json:"userId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Phone       *string `json:"phone"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}

func (req businessRequest) input() listingsdomain.BusinessInput {
	return listingsdomain.BusinessInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Website:     req.Website,
		Phone:       req.Phone,
		ImageURL:    req.ImageURL,
		Active:      req.IsActive,
	}
}

type welcomeCardRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	ImageURL  *string `json:"imageUrl"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

func (req welcomeCardRequest) input() listingsdomain.WelcomeCardInput {
	return listingsdomain.WelcomeCardInput{
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		Active:    req.IsActive,
	}
}

func (h *Handlers) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	category := queryParam(r, "category")

	businesses, err := h.Listings.ListBusinesses(r.Context(), category)
	if err != nil {
		h.fail(w, r, "businesses.list", err, "category", category)
		return
	}

	writeJSON(w, http.StatusOK, toBusinessResponses(businesses))
}

func (h *Handlers) ListUserBusinesses(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")

	businesses, err := h.Listings.ListBusinessesByOwner(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "businesses.list_owner", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toBusinessResponses(businesses))
}

func (h *Handlers) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req businessRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	business, err := h.Listings.CreateBusiness(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, "businesses.create", err, "user_id", req.UserID)
		return
	}

	writeJSON(w, http.StatusCreated, toBusinessResponse(*business))
}

func (h *Handlers) GetBusiness(w http.ResponseWriter, r *http.Request) {
	businessID := pathParam(r, "id")

	business, err := h.Listings.GetBusiness(r.Context(), businessID)
	if err != nil {
		h.fail(w, r, "businesses.get", err, "business_id", businessID)
		return
	}

	writeJSON(w, http.StatusOK, toBusinessResponse(*business))
}

func (h *Handlers) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	businessID := pathParam(r, "id")

	var req businessRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	business, err := h.Listings.UpdateBusiness(r.Context(), businessID, req.input())
	if err != nil {
		h.fail(w, r, "businesses.update", err, "business_id", businessID, "user_id", req.UserID)
		return
	}

	writeJSON(w, http.StatusOK, toBusinessResponse(*business))
}

func (h *Handlers) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	businessID := pathParam(r, "id")
	userID := queryParam(r, "userId")

	if err := h.Listings.DeleteBusiness(r.Context(), businessID, userID); err != nil {
		h.fail(w, r, "businesses.delete", err, "business_id", businessID, "user_id", userID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListWelcomeCards(w http.ResponseWriter, r *http.Request) {
	h.writeWelcomeCards(w, r, false)
}

func (h *Handlers) AdminListWelcomeCards(w http.ResponseWriter, r *http.Request) {
	h.writeWelcomeCards(w, r, true)
}

func (h *Handlers) writeWelcomeCards(w http.ResponseWriter, r *http.Request, includeInactive bool) {
	cards, err := h.Listings.ListWelcomeCards(r.Context(), includeInactive)
	if err != nil {
		h.fail(w, r, "welcome_cards.list", err)
		return
	}

	result := make([]welcomeCardResponse, 0, len(cards))
	for _, card := range cards {
		result = append(result, toWelcomeCardResponse(card))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) AdminCreateWelcomeCard(w http.ResponseWriter, r *http.Request) {
	var req welcomeCardRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	card, err := h.Listings.CreateWelcomeCard(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, "admin.welcome_cards.create", err)
		return
	}

	writeJSON(w, http.StatusCreated, toWelcomeCardResponse(*card))
}

func (h *Handlers) AdminUpdateWelcomeCard(w http.ResponseWriter, r *http.Request) {
	cardID := pathParam(r, "id")

	var req welcomeCardRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	card, err := h.Listings.UpdateWelcomeCard(r.Context(), cardID, req.input())
	if err != nil {
		h.fail(w, r, "admin.welcome_cards.update", err, "card_id", cardID)
		return
	}

	writeJSON(w, http.StatusOK, toWelcomeCardResponse(*card))
}

func (h *Handlers) AdminDeleteWelcomeCard(w http.ResponseWriter, r *http.Request) {
	cardID := pathParam(r, "id")

	if err := h.Listings.DeleteWelcomeCard(r.Context(), cardID); err != nil {
		h.fail(w, r, "admin.welcome_cards.delete", err, "card_id", cardID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
