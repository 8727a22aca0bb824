// Package handler contains the gin handlers for the records API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayush-verma1708/backend-crm/models"
	"github.com/ayush-verma1708/backend-crm/service"
	"github.com/ayush-verma1708/backend-crm/storage"
)

// RecordHandler binds the record services to HTTP.
type RecordHandler struct {
	list    *service.ListService
	records *service.RecordService
	lookup  *service.LookupService
}

func NewRecordHandler(list *service.ListService, records *service.RecordService, lookup *service.LookupService) *RecordHandler {
	return &RecordHandler{list: list, records: records, lookup: lookup}
}

// GetRecords serves GET /records.
func (h *RecordHandler) GetRecords(c *gin.Context) {
	q := parseListQuery(c)
	res, err := h.list.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching records", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateRecord serves POST /records.
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var payload models.RecordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	rec, err := h.records.Create(c.Request.Context(), &payload)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetRecordByID serves GET /records/:id.
func (h *RecordHandler) GetRecordByID(c *gin.Context) {
	detail, err := h.lookup.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching record", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateRecord serves PUT /records/:id, the cascading update.
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	var payload models.RecordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	rec, err := h.records.Update(c.Request.Context(), c.Param("id"), &payload)
	if err != nil {
		var verr *models.ValidationError
		switch {
		case errors.Is(err, service.ErrNoValidFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields provided for update"})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		case errors.Is(err, storage.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, rec)
}

type notesPayload struct {
	Note     string     `json:"note"`
	NoteDate *time.Time `json:"noteDate"`
}

// UpdateNotes serves PATCH /records/:id/notes.
func (h *RecordHandler) UpdateNotes(c *gin.Context) {
	var payload notesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	rec, err := h.records.UpdateNotes(c.Request.Context(), c.Param("id"), payload.Note, payload.NoteDate)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully", "record": rec})
}

// DeleteRecord serves DELETE /records/:id.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

// parseListQuery applies the pagination defaults and drops non-numeric
// bounds so they never make it into the filter.
func parseListQuery(c *gin.Context) storage.ListQuery {
	page := intQuery(c, "page", storage.DefaultPage)
	limit := intQuery(c, "limit", storage.DefaultLimit)
	return storage.ListQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Magazine: c.Query("magazine"),
		MinPrice: floatQuery(c, "minPrice"),
		MaxPrice: floatQuery(c, "maxPrice"),
	}
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func floatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
