package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kestrelfin/tradestore/internal/store"
	"github.com/kestrelfin/tradestore/internal/template"
	"github.com/kestrelfin/tradestore/internal/trade"
	"github.com/kestrelfin/tradestore/internal/validation"
)

const testToken = "test-token-12345"

const testContext = `{"user":"trader_123","agent":"trading_platform","action":"save_new","intent":"new_trade_booking"}`

func setupHandler(t *testing.T) (http.Handler, *trade.Service) {
	t.Helper()
	svc := trade.NewService(store.New())

	templates, err := template.NewFactory("v1")
	if err != nil {
		t.Fatalf("NewFactory(v1) failed: %v", err)
	}

	handler := NewHandler(Deps{
		Service:    svc,
		Templates:  templates,
		Validators: validation.NewFactory(),
		Token:      testToken,
		SeedCount:  5,
	})
	return handler, svc
}

func authReq(method, url, body, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, h http.Handler, req *http.Request, wantStatus int) map[string]any {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != wantStatus {
		t.Fatalf("status = %d, want %d; body = %s", rr.Code, wantStatus, rr.Body.String())
	}
	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	return resp
}

func saveTrade(t *testing.T, h http.Handler, id string) {
	t.Helper()
	body := fmt.Sprintf(`{"trade":{"id":%q,"data":{"trade_type":"IR_SWAP","notional":1000000}},"context":%s}`, id, testContext)
	doJSON(t, h, authReq(http.MethodPost, "/save/new", body, testToken), http.StatusCreated)
}

func errType(t *testing.T, resp map[string]any) string {
	t.Helper()
	errObj, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("response missing error envelope: %v", resp)
	}
	s, _ := errObj["type"].(string)
	return s
}

func TestAuth_MissingToken(t *testing.T) {
	h, _ := setupHandler(t)

	for _, token := range []string{"", "wrong-token"} {
		req := authReq(http.MethodPost, "/list", `{}`, token)
		resp := doJSON(t, h, req, http.StatusUnauthorized)
		if got := errType(t, resp); got != "authentication_error" {
			t.Errorf("error type = %q, want %q", got, "authentication_error")
		}
	}
}

func TestHealth_NoAuthRequired(t *testing.T) {
	h, _ := setupHandler(t)

	resp := doJSON(t, h, authReq(http.MethodGet, "/health", "", ""), http.StatusOK)
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want %q", resp["status"], "ok")
	}
	if resp["trades"] != 0.0 {
		t.Errorf("trades = %v, want 0", resp["trades"])
	}
}

func TestSaveNew(t *testing.T) {
	h, svc := setupHandler(t)

	body := `{"trade":{"id":"t1","data":{"notional":1000000}},"context":` + testContext + `}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/save/new", body, testToken), http.StatusCreated)
	if resp["id"] != "t1" {
		t.Errorf("saved id = %v, want t1", resp["id"])
	}

	if svc.Count() != 1 {
		t.Errorf("Count() = %d, want 1", svc.Count())
	}
}

func TestSaveNew_Duplicate(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")

	body := `{"trade":{"id":"t1"},"context":` + testContext + `}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/save/new", body, testToken), http.StatusConflict)
	if got := errType(t, resp); got != "already_exists" {
		t.Errorf("error type = %q, want %q", got, "already_exists")
	}
}

func TestSaveNew_InvalidContext(t *testing.T) {
	h, _ := setupHandler(t)

	body := `{"trade":{"id":"t1"},"context":{"user":"","agent":"a","action":"x","intent":"i"}}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/save/new", body, testToken), http.StatusUnprocessableEntity)
	if got := errType(t, resp); got != "validation_error" {
		t.Errorf("error type = %q, want %q", got, "validation_error")
	}
}

func TestSaveNew_MalformedBody(t *testing.T) {
	h, _ := setupHandler(t)

	resp := doJSON(t, h, authReq(http.MethodPost, "/save/new", `{not json`, testToken), http.StatusBadRequest)
	if got := errType(t, resp); got != "invalid_request_error" {
		t.Errorf("error type = %q, want %q", got, "invalid_request_error")
	}
}

func TestSaveUpdate_NotFound(t *testing.T) {
	h, _ := setupHandler(t)

	body := `{"trade":{"id":"ghost"},"context":` + testContext + `}`
	doJSON(t, h, authReq(http.MethodPost, "/save/update", body, testToken), http.StatusNotFound)
}

func TestSavePartial_MergeOverHTTP(t *testing.T) {
	h, _ := setupHandler(t)

	body := `{"trade":{"id":"t1","data":{"counterparty":"BANK_A","notional":1000000,"stale":{"x":1}}},"context":` + testContext + `}`
	doJSON(t, h, authReq(http.MethodPost, "/save/new", body, testToken), http.StatusCreated)

	// notional changes, stale clears via null, counterparty survives.
	patch := `{"id":"t1","updates":{"data":{"notional":2000000,"stale":null}},"context":` + testContext + `}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/save/partial", patch, testToken), http.StatusOK)

	data := resp["data"].(map[string]any)
	if data["notional"] != 2000000.0 {
		t.Errorf("notional = %v, want 2000000", data["notional"])
	}
	if data["counterparty"] != "BANK_A" {
		t.Errorf("counterparty = %v, want BANK_A", data["counterparty"])
	}
	if _, exists := data["stale"]; exists {
		t.Errorf("stale object not removed: %v", data["stale"])
	}
}

func TestSavePartial_MissingID(t *testing.T) {
	h, _ := setupHandler(t)

	body := `{"updates":{"x":1},"context":` + testContext + `}`
	doJSON(t, h, authReq(http.MethodPost, "/save/partial", body, testToken), http.StatusUnprocessableEntity)
}

func TestLoadByID(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")

	resp := doJSON(t, h, authReq(http.MethodGet, "/load/t1", "", testToken), http.StatusOK)
	if resp["id"] != "t1" {
		t.Errorf("id = %v, want t1", resp["id"])
	}

	doJSON(t, h, authReq(http.MethodGet, "/load/ghost", "", testToken), http.StatusNotFound)
}

func TestLoadByIDs(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")
	saveTrade(t, h, "t2")

	body := `{"ids":["t1","ghost","t2"]}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/load", body, testToken), http.StatusOK)

	trades := resp["trades"].([]any)
	if len(trades) != 2 {
		t.Errorf("len(trades) = %d, want 2", len(trades))
	}
	missing := resp["missing_ids"].([]any)
	if len(missing) != 1 || missing[0] != "ghost" {
		t.Errorf("missing_ids = %v, want [ghost]", missing)
	}
}

func TestLoadByIDs_AllMissing(t *testing.T) {
	h, _ := setupHandler(t)

	resp := doJSON(t, h, authReq(http.MethodPost, "/load", `{"ids":["a","b"]}`, testToken), http.StatusOK)

	// Both fields stay JSON arrays even when empty.
	if trades, ok := resp["trades"].([]any); !ok || len(trades) != 0 {
		t.Errorf("trades = %v, want []", resp["trades"])
	}
	if missing, ok := resp["missing_ids"].([]any); !ok || len(missing) != 2 {
		t.Errorf("missing_ids = %v, want two ids", resp["missing_ids"])
	}
}

func TestList_FilterAndPagination(t *testing.T) {
	h, _ := setupHandler(t)
	for i := 0; i < 5; i++ {
		body := fmt.Sprintf(`{"trade":{"id":"t%d","data":{"amount":%d}},"context":%s}`, i, (i+1)*50, testContext)
		doJSON(t, h, authReq(http.MethodPost, "/save/new", body, testToken), http.StatusCreated)
	}

	body := `{"filter":{"data.amount":{"gte":100,"lte":200}}}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/list", body, testToken), http.StatusOK)
	if resp["count"] != 3.0 {
		t.Errorf("count = %v, want 3", resp["count"])
	}
	if got := len(resp["trades"].([]any)); got != 3 {
		t.Errorf("len(trades) = %d, want 3", got)
	}

	// count reflects the full match set even when the page is smaller.
	paged := `{"filter":{"data.amount":{"gte":100,"lte":200}},"limit":2,"offset":2}`
	resp = doJSON(t, h, authReq(http.MethodPost, "/list", paged, testToken), http.StatusOK)
	if resp["count"] != 3.0 {
		t.Errorf("count = %v, want 3", resp["count"])
	}
	if got := len(resp["trades"].([]any)); got != 1 {
		t.Errorf("len(trades) = %d, want 1", got)
	}
}

func TestList_InvalidPagination(t *testing.T) {
	h, _ := setupHandler(t)

	for _, body := range []string{`{"limit":0}`, `{"limit":-5}`, `{"offset":-1}`} {
		resp := doJSON(t, h, authReq(http.MethodPost, "/list", body, testToken), http.StatusUnprocessableEntity)
		if got := errType(t, resp); got != "validation_error" {
			t.Errorf("body %s: error type = %q, want %q", body, got, "validation_error")
		}
	}
}

func TestList_InvalidFilter(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")

	body := `{"filter":{"data.x":{"frobnicate":1}}}`
	doJSON(t, h, authReq(http.MethodPost, "/list", body, testToken), http.StatusUnprocessableEntity)
}

func TestListCount(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")
	saveTrade(t, h, "t2")

	resp := doJSON(t, h, authReq(http.MethodPost, "/list/count", `{}`, testToken), http.StatusOK)
	if resp["count"] != 2.0 {
		t.Errorf("count = %v, want 2", resp["count"])
	}
}

func TestDeleteByID_Idempotent(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")

	body := `{"context":` + testContext + `}`
	resp := doJSON(t, h, authReq(http.MethodDelete, "/delete/t1", body, testToken), http.StatusOK)
	if resp["deleted"] != true {
		t.Errorf("deleted = %v, want true", resp["deleted"])
	}

	// Second delete reports false but still succeeds.
	resp = doJSON(t, h, authReq(http.MethodDelete, "/delete/t1", body, testToken), http.StatusOK)
	if resp["deleted"] != false {
		t.Errorf("deleted = %v, want false", resp["deleted"])
	}
}

func TestDeleteByIDs(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")
	saveTrade(t, h, "t2")

	body := `{"ids":["t1","ghost"],"context":` + testContext + `}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/delete", body, testToken), http.StatusOK)
	if resp["deleted_count"] != 1.0 {
		t.Errorf("deleted_count = %v, want 1", resp["deleted_count"])
	}
	missing := resp["missing_ids"].([]any)
	if len(missing) != 1 || missing[0] != "ghost" {
		t.Errorf("missing_ids = %v, want [ghost]", missing)
	}
}

func TestTemplates(t *testing.T) {
	h, _ := setupHandler(t)

	resp := doJSON(t, h, authReq(http.MethodGet, "/templates", "", testToken), http.StatusOK)
	types := resp["trade_types"].([]any)
	if len(types) != 3 {
		t.Errorf("trade_types = %v, want 3 entries", types)
	}

	resp = doJSON(t, h, authReq(http.MethodGet, "/templates/ir-swap", "", testToken), http.StatusOK)
	id, _ := resp["id"].(string)
	if !strings.HasPrefix(id, "IR_SWAP_") {
		t.Errorf("id = %q, want IR_SWAP_ prefix", id)
	}
	if _, ok := resp["swapLegs"].([]any); !ok {
		t.Error("template missing swapLegs")
	}

	doJSON(t, h, authReq(http.MethodGet, "/templates/weather-derivative", "", testToken), http.StatusNotFound)
}

func TestValidate(t *testing.T) {
	h, _ := setupHandler(t)

	body := `{"trade":{"swapDetails":{},"swapLegs":[{"direction":"pay"}]}}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/validate", body, testToken), http.StatusOK)
	if resp["success"] != false {
		t.Errorf("success = %v, want false", resp["success"])
	}
	if resp["trade_type"] != "ir-swap" {
		t.Errorf("trade_type = %v, want ir-swap", resp["trade_type"])
	}
	if errs := resp["errors"].([]any); len(errs) == 0 {
		t.Error("expected validation errors")
	}

	unknown := `{"trade":{"mystery":true}}`
	doJSON(t, h, authReq(http.MethodPost, "/validate", unknown, testToken), http.StatusUnprocessableEntity)
}

func TestAdminSeedAndPurge(t *testing.T) {
	h, svc := setupHandler(t)

	body := `{"count":3,"context":` + testContext + `}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/admin/seed", body, testToken), http.StatusCreated)
	if resp["trades_created"] != 3.0 {
		t.Errorf("trades_created = %v, want 3", resp["trades_created"])
	}
	if ids := resp["trade_ids"].([]any); len(ids) != 3 {
		t.Errorf("trade_ids = %v, want 3 entries", ids)
	}
	if svc.Count() != 3 {
		t.Errorf("Count() = %d, want 3", svc.Count())
	}

	// Zero count falls back to the configured default.
	purge := `{"context":` + testContext + `}`
	doJSON(t, h, authReq(http.MethodPost, "/admin/purge", purge, testToken), http.StatusOK)
	resp = doJSON(t, h, authReq(http.MethodPost, "/admin/seed", purge, testToken), http.StatusCreated)
	if resp["trades_created"] != 5.0 {
		t.Errorf("trades_created = %v, want default 5", resp["trades_created"])
	}
}

func TestAdminSeed_CountOutOfRange(t *testing.T) {
	h, _ := setupHandler(t)

	for _, count := range []int{-1, 101} {
		body := fmt.Sprintf(`{"count":%d,"context":%s}`, count, testContext)
		doJSON(t, h, authReq(http.MethodPost, "/admin/seed", body, testToken), http.StatusUnprocessableEntity)
	}
}

func TestAdminPurge(t *testing.T) {
	h, svc := setupHandler(t)
	saveTrade(t, h, "t1")
	saveTrade(t, h, "t2")

	body := `{"context":` + testContext + `}`
	resp := doJSON(t, h, authReq(http.MethodPost, "/admin/purge", body, testToken), http.StatusOK)
	if resp["trades_deleted"] != 2.0 {
		t.Errorf("trades_deleted = %v, want 2", resp["trades_deleted"])
	}
	if svc.Count() != 0 {
		t.Errorf("Count() = %d, want 0", svc.Count())
	}
}

func TestAdminLog(t *testing.T) {
	h, _ := setupHandler(t)
	saveTrade(t, h, "t1")
	body := `{"context":` + testContext + `}`
	doJSON(t, h, authReq(http.MethodDelete, "/delete/t1", body, testToken), http.StatusOK)

	resp := doJSON(t, h, authReq(http.MethodGet, "/admin/log", "", testToken), http.StatusOK)
	if resp["count"] != 2.0 {
		t.Errorf("count = %v, want 2", resp["count"])
	}
	entries := resp["entries"].([]any)
	first := entries[0].(map[string]any)
	if first["operation"] != "save" || first["trade_id"] != "t1" {
		t.Errorf("entry = %v, want save of t1", first)
	}
	ctx := first["context"].(map[string]any)
	if ctx["user"] != "trader_123" {
		t.Errorf("context user = %v, want trader_123", ctx["user"])
	}
	second := entries[1].(map[string]any)
	if second["operation"] != "delete" {
		t.Errorf("second operation = %v, want delete", second["operation"])
	}
}
