package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/contact"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
)

type ContactHandler struct {
	service contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{service: svc}
}

// GetAll - GET /v1/contacts?name=&favorite=&sortBy=&order=&page=&limit=
func (h *ContactHandler) GetAll(c *gin.Context) {
	page, limit := query.Pagination(c)

	filter := contact.Filter{
		Name:     c.Query("name"),
		Favorite: query.BoolParam(c, "favorite"),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
		Skip:     int64((page - 1) * limit),
		Limit:    int64(limit),
	}

	contacts, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, contacts, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// GetByID - GET /v1/contacts/:id
func (h *ContactHandler) GetByID(c *gin.Context) {
	ct, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, ct)
}

// Create - POST /v1/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req contact.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}

	ct, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, ct)
}

// Update - PUT /v1/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	var req contact.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}

	ct, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, ct)
}

// Delete - DELETE /v1/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	resp, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
