package booking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"renthub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings/:id/bookings", h.List)
	rg.POST("/listings/:id/bookings", h.Create)
	rg.GET("/listings/:id/bookings/:booking_id", h.Get)
	rg.PATCH("/listings/:id/bookings/:booking_id", h.Update)
	rg.DELETE("/listings/:id/bookings/:booking_id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rows, landlord, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), listingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": viewsFor(rows, landlord)})
}

func (h *Handler) Get(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "booking_id")
	if !ok {
		return
	}

	b, landlord, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), listingID, bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": viewFor(b, landlord)})
}

func (h *Handler) Create(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), listingID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": renterView(b)})
}

func (h *Handler) Update(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "booking_id")
	if !ok {
		return
	}

	// unknown keys are rejected here so a disallowed-field verdict below is
	// always about a real booking field
	var req UpdateBookingRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, landlord, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), listingID, bookingID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": viewFor(b, landlord)})
}

func (h *Handler) Delete(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "booking_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), listingID, bookingID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrListingNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrOwnListing:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Owner cannot book own listing")
	case ErrOnlyConfirmEditable:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only is_confirmed editable")
	case ErrFieldNotAllowed:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Field not editable by renter")
	case ErrDeleteForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to delete this booking")
	case ErrInvalidDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use the YYYY-MM-DD format")
	case ErrInvalidRange:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Start date must be before end date")
	case ErrPastDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Start date cannot be in the past")
	case ErrConflict:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "This listing is already booked for the selected dates")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}
