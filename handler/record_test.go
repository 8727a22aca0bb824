package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ayush-verma1708/backend-crm/cache"
	"github.com/ayush-verma1708/backend-crm/handler"
	"github.com/ayush-verma1708/backend-crm/models"
	"github.com/ayush-verma1708/backend-crm/router"
	"github.com/ayush-verma1708/backend-crm/service"
	"github.com/ayush-verma1708/backend-crm/storage/storetest"
)

func setupServer(t *testing.T) (*httptest.Server, *storetest.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storetest.New()
	mem, err := cache.NewMemory(cache.DefaultMemoryConfig())
	if err != nil {
		t.Fatalf("building cache: %v", err)
	}
	h := handler.NewRecordHandler(
		service.NewListService(store, mem),
		service.NewRecordService(store),
		service.NewLookupService(store),
	)
	engine := gin.New()
	router.SetupRouters(engine, h)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestGetRecordsDefaults(t *testing.T) {
	server, store := setupServer(t)
	for i := 0; i < 3; i++ {
		store.AddRecord(models.Record{
			FirstName: "Anna", LastName: fmt.Sprintf("S%d", i),
			Magazine: "Vogue", Amount: 50, Email: "a@x.com",
		})
	}

	resp, err := http.Get(server.URL + "/records")
	if err != nil {
		t.Fatalf("GET /records: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res service.ListResult
	decode(t, resp, &res)
	if res.TotalRecords != 3 || res.Page != 1 || res.TotalPages != 1 {
		t.Errorf("got totalRecords=%d page=%d totalPages=%d, want 3/1/1", res.TotalRecords, res.Page, res.TotalPages)
	}
	if res.TotalAmount != 150 {
		t.Errorf("totalAmount = %v, want 150", res.TotalAmount)
	}
}

func TestGetRecordsIgnoresNonNumericBounds(t *testing.T) {
	server, store := setupServer(t)
	store.AddRecord(models.Record{FirstName: "Anna", LastName: "S", Magazine: "Vogue", Amount: 50, Email: "a@x.com"})

	resp, err := http.Get(server.URL + "/records?minPrice=abc&maxPrice=")
	if err != nil {
		t.Fatalf("GET /records: %v", err)
	}
	var res service.ListResult
	decode(t, resp, &res)
	if res.TotalRecords != 1 {
		t.Errorf("totalRecords = %d, want 1 (non-numeric bounds ignored)", res.TotalRecords)
	}
}

func TestCreateRecord(t *testing.T) {
	server, _ := setupServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/records", gin.H{
		"firstName":      "Anna",
		"lastName":       "Smith",
		"magazine":       "Vogue",
		"amount":         150,
		"email":          "anna@example.com",
		"modelInstaLink": "https://instagram.com/anna",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var rec models.Record
	decode(t, resp, &rec)
	if rec.ID.IsZero() {
		t.Error("created record has no id")
	}

	// The created record is retrievable by its assigned identifier.
	getResp, err := http.Get(server.URL + "/records/" + rec.ID.Hex())
	if err != nil {
		t.Fatalf("GET by id: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("lookup status = %d, want 200", getResp.StatusCode)
	}
	getResp.Body.Close()
}

func TestCreateRecordMissingEmail(t *testing.T) {
	server, _ := setupServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/records", gin.H{
		"firstName":      "Anna",
		"lastName":       "Smith",
		"magazine":       "Vogue",
		"amount":         150,
		"modelInstaLink": "https://instagram.com/anna",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	decode(t, resp, &body)
	if !strings.Contains(body.Error, "Email") {
		t.Errorf("error %q does not reference the Email constraint", body.Error)
	}
}

func TestCreateRecordMalformedBody(t *testing.T) {
	server, _ := setupServer(t)

	resp, err := http.Post(server.URL+"/records", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetRecordByIDNotFound(t *testing.T) {
	server, _ := setupServer(t)

	resp, err := http.Get(server.URL + "/records/64f000000000000000000000")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetRecordByIDDetail(t *testing.T) {
	server, store := setupServer(t)
	a := store.AddRecord(models.Record{FirstName: "Anna", LastName: "Smith", Email: "a@x.com"})
	store.AddRecord(models.Record{FirstName: "Anna", LastName: "Smith", Email: "a@x.com"})
	store.AddUser(models.User{EmailAddress: "a@x.com", StageName: "Annie"})

	resp, err := http.Get(server.URL + "/records/" + a.ID.Hex())
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	var detail service.RecordDetail
	decode(t, resp, &detail)
	if len(detail.SameEmailRecords) != 2 {
		t.Errorf("sameEmailRecords = %d, want 2", len(detail.SameEmailRecords))
	}
	if detail.UserDetails == nil || detail.UserDetails.StageName != "Annie" {
		t.Errorf("userDetails = %+v, want stage name Annie", detail.UserDetails)
	}
}

func TestUpdateRecordCascade(t *testing.T) {
	server, store := setupServer(t)
	a := store.AddRecord(models.Record{FirstName: "Anna", LastName: "Smith", Magazine: "Vogue", Email: "a@x.com"})
	b := store.AddRecord(models.Record{FirstName: "Anna", LastName: "Smith", Magazine: "Vogue", Email: "a@x.com"})

	resp := doJSON(t, http.MethodPut, server.URL+"/records/"+a.ID.Hex(), gin.H{"magazine": "Elle"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	var detail service.RecordDetail
	getResp, err := http.Get(server.URL + "/records/" + b.ID.Hex())
	if err != nil {
		t.Fatalf("GET sibling: %v", err)
	}
	decode(t, getResp, &detail)
	if detail.Record.Magazine != "Elle" {
		t.Errorf("sibling magazine = %q, want Elle (cascade)", detail.Record.Magazine)
	}
}

func TestUpdateRecordNoValidFields(t *testing.T) {
	server, store := setupServer(t)
	a := store.AddRecord(models.Record{FirstName: "Anna", LastName: "Smith", Email: "a@x.com"})

	resp := doJSON(t, http.MethodPut, server.URL+"/records/"+a.ID.Hex(), gin.H{"magazine": ""})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateRecordNotFound(t *testing.T) {
	server, _ := setupServer(t)

	resp := doJSON(t, http.MethodPut, server.URL+"/records/64f000000000000000000000", gin.H{"magazine": "Elle"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateNotes(t *testing.T) {
	server, store := setupServer(t)
	a := store.AddRecord(models.Record{FirstName: "Anna", LastName: "Smith", Email: "a@x.com"})

	resp := doJSON(t, http.MethodPatch, server.URL+"/records/"+a.ID.Hex()+"/notes", gin.H{
		"note":     "called back",
		"noteDate": "2024-03-01T12:00:00Z",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Message string        `json:"message"`
		Record  models.Record `json:"record"`
	}
	decode(t, resp, &body)
	if body.Message == "" {
		t.Error("missing message in response")
	}
	if body.Record.Notes != "called back" {
		t.Errorf("record notes = %q, want 'called back'", body.Record.Notes)
	}
}

func TestDeleteRecord(t *testing.T) {
	server, store := setupServer(t)
	a := store.AddRecord(models.Record{FirstName: "Anna", LastName: "Smith", Email: "a@x.com"})

	resp := doJSON(t, http.MethodDelete, server.URL+"/records/"+a.ID.Hex(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// A second delete and a lookup both 404.
	resp = doJSON(t, http.MethodDelete, server.URL+"/records/"+a.ID.Hex(), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	getResp, err := http.Get(server.URL + "/records/" + a.ID.Hex())
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("lookup after delete status = %d, want 404", getResp.StatusCode)
	}
}
