package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scholar-monitor-api/config"
	"scholar-monitor-api/models"
	"scholar-monitor-api/routes"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the full route table against a fresh in-memory
// database installed as the package-global handle the controllers use.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Scholar{},
		&models.Paper{},
		&models.Patent{},
		&models.SyncLog{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	previous := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = previous
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("admin", "admin")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestScholarLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Create
	rec := doJSON(t, router, http.MethodPost, "/api/scholars",
		`{"aminer_id":"A001","name":"张三","nation":"China"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body %s", rec.Code, rec.Body.String())
	}

	var created models.Scholar
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == 0 || created.AminerID != "A001" || created.Name != "张三" {
		t.Fatalf("unexpected created scholar: %+v", created)
	}

	// Read back
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/scholars/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d body %s", rec.Code, rec.Body.String())
	}
	var fetched models.Scholar
	json.Unmarshal(rec.Body.Bytes(), &fetched)
	if fetched.AminerID != "A001" || fetched.Nation != "China" {
		t.Fatalf("fetched scholar does not match created: %+v", fetched)
	}

	// Partial update leaves other fields alone
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/scholars/%d", created.ID),
		`{"name":"新名字"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d body %s", rec.Code, rec.Body.String())
	}
	var updated models.Scholar
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Name != "新名字" || updated.AminerID != "A001" || updated.Nation != "China" {
		t.Fatalf("partial update touched wrong fields: %+v", updated)
	}

	// Delete, then the record is gone
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/scholars/%d", created.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/scholars/%d", created.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestDuplicateScholarReturnsConflict(t *testing.T) {
	router := newTestRouter(t)

	body := `{"aminer_id":"A002","name":"李四"}`
	if rec := doJSON(t, router, http.MethodPost, "/api/scholars", body); rec.Code != http.StatusCreated {
		t.Fatalf("seed create: expected 201, got %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/scholars", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate aminer_id, got %d body %s", rec.Code, rec.Body.String())
	}

	var payload map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &payload)
	if payload["success"] != false || payload["error"] == "" {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestValidationAndBadIDResponses(t *testing.T) {
	router := newTestRouter(t)

	// Missing required fields
	rec := doJSON(t, router, http.MethodPost, "/api/scholars", `{"name":"no id"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing aminer_id, got %d", rec.Code)
	}

	// Non-numeric path id
	rec = doJSON(t, router, http.MethodGet, "/api/scholars/abc", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for non-numeric id, got %d", rec.Code)
	}
}

func TestListScholarsPaginationEnvelope(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"aminer_id":"L%02d","name":"scholar %d"}`, i, i)
		if rec := doJSON(t, router, http.MethodPost, "/api/scholars", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed %d: expected 201, got %d", i, rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/scholars/list?size=2&offset=0", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}

	var page struct {
		Total int64            `json:"total"`
		Data  []models.Scholar `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if page.Total != 3 || len(page.Data) != 2 {
		t.Fatalf("expected total 3 with page of 2, got total %d len %d", page.Total, len(page.Data))
	}
}

func TestPaperEndpointsWithBatch(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scholars", `{"aminer_id":"A003","name":"王五"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed scholar: expected 201, got %d", rec.Code)
	}
	var scholar models.Scholar
	json.Unmarshal(rec.Body.Bytes(), &scholar)

	batch := fmt.Sprintf(`[
		{"aminer_id":"P1","scholar_id":%d,"title":"first paper","year":2023},
		{"aminer_id":"P2","scholar_id":%d,"title":"second paper","year":2024}
	]`, scholar.ID, scholar.ID)
	rec = doJSON(t, router, http.MethodPost, "/api/papers/batch", batch)
	if rec.Code != http.StatusCreated {
		t.Fatalf("batch: expected 201, got %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/papers?scholar_id=%d", scholar.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list by scholar: expected 200, got %d", rec.Code)
	}
	var papers []models.Paper
	if err := json.Unmarshal(rec.Body.Bytes(), &papers); err != nil {
		t.Fatalf("decode papers: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("expected 2 papers, got %d", len(papers))
	}

	// A batch with a duplicate leaves the table unchanged
	rec = doJSON(t, router, http.MethodPost, "/api/papers/batch", batch)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate batch: expected 409, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/papers?scholar_id=%d", scholar.ID), "")
	json.Unmarshal(rec.Body.Bytes(), &papers)
	if len(papers) != 2 {
		t.Fatalf("failed batch changed the table: %d papers", len(papers))
	}
}

func TestDashboardAndActivities(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(t, router, http.MethodPost, "/api/scholars", `{"aminer_id":"A004","name":"赵六"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed scholar: expected 201, got %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/dashboard/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}
	var stats map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	for _, key := range []string{
		"totalScholars", "totalPapers", "totalPatents", "recentUpdates",
		"totalScholarsMoM", "totalPapersMoM", "totalPatentsMoM",
	} {
		if _, ok := stats[key]; !ok {
			t.Errorf("stats missing key %q", key)
		}
	}
	if stats["totalScholars"] != float64(1) {
		t.Fatalf("expected 1 scholar in stats, got %v", stats["totalScholars"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/activities", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("activities: expected 200, got %d", rec.Code)
	}
	var activities []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &activities); err != nil {
		t.Fatalf("decode activities: %v", err)
	}
	if len(activities) != 1 || activities[0]["type"] != "scholar" || activities[0]["action"] != "created" {
		t.Fatalf("unexpected activities: %+v", activities)
	}
}

func TestSyncLogsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scholars", `{"aminer_id":"A005","name":"audited"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed scholar: expected 201, got %d", rec.Code)
	}
	var scholar models.Scholar
	json.Unmarshal(rec.Body.Bytes(), &scholar)

	if rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/scholars/%d", scholar.ID), ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/sync-logs?scholar_id=%d", scholar.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sync-logs: expected 200, got %d", rec.Code)
	}
	var page struct {
		Total int64            `json:"total"`
		Data  []models.SyncLog `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode sync logs: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 audit rows, got %d", page.Total)
	}
}

func TestAPIRequiresBasicAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scholars/list", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); !strings.Contains(got, "Basic") {
		t.Fatalf("expected WWW-Authenticate challenge, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/scholars/list", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", rec.Code)
	}
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unauthenticated health check, got %d", rec.Code)
	}
}
