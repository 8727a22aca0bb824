package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"First Name", "Last Name", "Magazine", "Amount", "Email", "Model Insta Link", "Lead Source", "Notes"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("writing header: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("computing cell: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("writing row %d: %v", i, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serializing workbook: %v", err)
	}
	return buf
}

func uploadWorkbook(t *testing.T, url string, workbook *bytes.Buffer) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "records.xlsx")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(workbook.Bytes()); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	resp, err := http.Post(url+"/records/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /records/upload: %v", err)
	}
	return resp
}

func TestUploadRecords(t *testing.T) {
	server, store := setupServer(t)

	workbook := buildWorkbook(t, [][]interface{}{
		{"Anna", "Smith", "Vogue", 150, "anna@example.com", "https://instagram.com/anna", "referral", ""},
		{"Zoe", "Jones", "Elle", 90, "zoe@example.com", "https://instagram.com/zoe"},
		{"Bad", "Row", "Vogue", "not-a-number", "bad@example.com", "https://instagram.com/bad"},
		{"NoEmail", "Here", "Vogue", 10, "", "https://instagram.com/x"},
	})
	resp := uploadWorkbook(t, server.URL, workbook)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Imported int `json:"imported"`
		Failed   []struct {
			Row    int    `json:"row"`
			Reason string `json:"reason"`
		} `json:"failed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Imported != 2 {
		t.Errorf("imported = %d, want 2", body.Imported)
	}
	if len(body.Failed) != 2 {
		t.Fatalf("failed = %d rows, want 2", len(body.Failed))
	}
	if body.Failed[0].Row != 4 {
		t.Errorf("first failure row = %d, want 4 (1-based with header)", body.Failed[0].Row)
	}

	records, err := store.FindRecordsByEmail(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("FindRecordsByEmail: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("anna records = %d, want 1", len(records))
	}
}

func TestUploadRecordsNoFile(t *testing.T) {
	server, _ := setupServer(t)

	resp, err := http.Post(server.URL+"/records/upload", "multipart/form-data", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
