package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	intconfig "portal/internal/config"
)

func optionsTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/services/:service/options/:field", GetCascadeOptions)
	r.GET("/api/services/:service/resolve", ResolvePriceCode)
	return r
}

func TestGetCascadeOptions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	defer func() { intconfig.DB = nil }()

	mock.ExpectQuery("SELECT DISTINCT route FROM rent_price").
		WithArgs("당일").
		WillReturnRows(sqlmock.NewRows([]string{"route"}).
			AddRow("하노이 시내").AddRow("하롱-하노이"))

	r := optionsTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/services/rentcar/options/route?category=당일", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Field   string   `json:"field"`
		Options []string `json:"options"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Field != "route" || len(body.Options) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetCascadeOptionsEmptyWhenEarlierFieldMissing(t *testing.T) {
	r := optionsTestRouter()
	// car_type requested without route: the cascade never guesses past a gap.
	req := httptest.NewRequest(http.MethodGet, "/api/services/rentcar/options/car_type?category=당일", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Options []string `json:"options"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Options) != 0 {
		t.Fatalf("expected no options, got %v", body.Options)
	}
}

func TestGetCascadeOptionsRejectsUnknownServiceOrField(t *testing.T) {
	r := optionsTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/services/submarine/options/route", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown service: expected 400, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/services/rentcar/options/color", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: expected 400, got %d", w.Code)
	}
}

func TestResolvePriceCodeStatusMapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	defer func() { intconfig.DB = nil }()

	r := optionsTestRouter()
	url := "/api/services/rentcar/resolve?category=당일&route=하롱-하노이&car_type=4seater"

	// Unique row resolves.
	mock.ExpectQuery("FROM rent_price").
		WillReturnRows(sqlmock.NewRows([]string{"rent_code", "price", "start_date", "end_date", "weekday_type"}).
			AddRow("RC-001", 90000, "", "", ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unique: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// No row is a 404.
	mock.ExpectQuery("FROM rent_price").
		WillReturnRows(sqlmock.NewRows([]string{"rent_code", "price", "start_date", "end_date", "weekday_type"}))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing: expected 404, got %d", w.Code)
	}

	// Two rows are ambiguous, not a silent pick.
	mock.ExpectQuery("FROM rent_price").
		WillReturnRows(sqlmock.NewRows([]string{"rent_code", "price", "start_date", "end_date", "weekday_type"}).
			AddRow("RC-001", 90000, "", "", "").
			AddRow("RC-002", 95000, "", "", ""))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("ambiguous: expected 409, got %d", w.Code)
	}

	// Missing selections never reach the database.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/rentcar/resolve?category=당일", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("partial: expected 400, got %d", w.Code)
	}
}
