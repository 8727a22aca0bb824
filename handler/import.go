package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/ayush-verma1708/backend-crm/models"
)

// Expected column order for record imports, header row included:
// First Name | Last Name | Magazine | Amount | Email | Model Insta Link |
// Lead Source | Notes. The last two are optional.
const importMinColumns = 6

// rowError reports one rejected spreadsheet row. Row numbers are 1-based as
// shown in the spreadsheet.
type rowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// UploadRecords serves POST /records/upload: bulk-creates records from an
// Excel sheet, running each row through the same validation as a single
// create. Invalid rows are reported back, valid rows are inserted.
func (h *RecordHandler) UploadRecords(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file is uploaded"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read file", "details": err.Error()})
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open Excel file", "details": err.Error()})
		return
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No sheets found in Excel file"})
		return
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read Excel file", "details": err.Error()})
		return
	}
	if len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file has no data rows"})
		return
	}

	imported := 0
	failed := []rowError{}
	for i, columns := range rows[1:] {
		rowNum := i + 2
		payload, err := rowToPayload(columns)
		if err != nil {
			failed = append(failed, rowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		if _, err := h.records.Create(c.Request.Context(), payload); err != nil {
			failed = append(failed, rowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Import complete",
		"imported": imported,
		"failed":   failed,
	})
}

func rowToPayload(columns []string) (*models.RecordPayload, error) {
	if len(columns) < importMinColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", importMinColumns, len(columns))
	}
	amount, err := strconv.ParseFloat(columns[3], 64)
	if err != nil {
		return nil, fmt.Errorf("Amount: %q is not numeric", columns[3])
	}
	payload := &models.RecordPayload{
		FirstName:      columns[0],
		LastName:       columns[1],
		Magazine:       columns[2],
		Amount:         &amount,
		Email:          columns[4],
		ModelInstaLink: columns[5],
	}
	if len(columns) > 6 {
		payload.LeadSource = columns[6]
	}
	if len(columns) > 7 {
		payload.Notes = columns[7]
	}
	return payload, nil
}
