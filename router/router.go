package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ayush-verma1708/backend-crm/handler"
)

// SetupRouters mounts the records API on the engine.
func SetupRouters(router *gin.Engine, h *handler.RecordHandler) {
	router.GET("/records", h.GetRecords)
	router.POST("/records", h.CreateRecord)
	router.POST("/records/upload", h.UploadRecords)
	router.GET("/records/:id", h.GetRecordByID)
	router.PUT("/records/:id", h.UpdateRecord)
	router.PATCH("/records/:id/notes", h.UpdateNotes)
	router.DELETE("/records/:id", h.DeleteRecord)
}
