package listing

import (
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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings", h.Search)
	rg.GET("/listings/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings", h.Create)
	rg.PATCH("/listings/:id", h.Update)
	rg.DELETE("/listings/:id", h.Delete)
	rg.GET("/search-queries", h.SearchHistory)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"listing": l})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"listing": l})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"listing": l})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Search(c *gin.Context) {
	p, ok := searchParamsFromQuery(c)
	if !ok {
		return
	}

	var actor *int64
	if v := c.GetInt64("user_id"); v != 0 {
		actor = &v
	}

	rows, err := h.service.Search(c.Request.Context(), actor, p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"listings": rows})
}

func (h *Handler) SearchHistory(c *gin.Context) {
	rows, err := h.service.SearchHistory(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"search_queries": rows})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not the owner of this listing")
	case ErrInvalidDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use the YYYY-MM-DD format")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func searchParamsFromQuery(c *gin.Context) (SearchParams, bool) {
	p := SearchParams{
		My:           c.Query("my") != "",
		Title:        qstring(c, "title"),
		Description:  qstring(c, "description"),
		Location:     qstring(c, "location"),
		City:         qstring(c, "city"),
		PropertyType: qstring(c, "property_type"),
	}

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"price_min", &p.PriceMin},
		{"price_max", &p.PriceMax},
		{"rooms_min", &p.RoomsMin},
		{"rooms_max", &p.RoomsMax},
	} {
		v, ok := qfloat(c, f.name)
		if !ok {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid numeric parameter "+f.name)
			return SearchParams{}, false
		}
		*f.dst = v
	}
	return p, true
}

func qstring(c *gin.Context, name string) *string {
	if v := c.Query(name); v != "" {
		return &v
	}
	return nil
}

func qfloat(c *gin.Context, name string) (*float64, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}
