package testutil_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/amaas/amaas-core-sdk-go/internal/testutil"
)

func get(t *testing.T, url, token string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func TestFakeAPI_SeedAndGet(t *testing.T) {
	api := testutil.NewFakeAPI(t, "secret")
	api.Seed(t, "parties", 1, testutil.BrokerJSON)

	resp, body := get(t, api.URL()+"/parties/1/BRK-1", "secret")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var rec map[string]any
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["party_type"] != "Broker" {
		t.Errorf("expected Broker, got %v", rec["party_type"])
	}

	reqs := api.Requests()
	if len(reqs) != 1 || reqs[0].Authorization != "secret" || reqs[0].Path != "/parties/1/BRK-1" {
		t.Errorf("unexpected recorded requests: %+v", reqs)
	}
}

func TestFakeAPI_Unauthorized(t *testing.T) {
	api := testutil.NewFakeAPI(t, "secret")

	resp, _ := get(t, api.URL()+"/parties/1", "wrong")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestFakeAPI_NotFound(t *testing.T) {
	api := testutil.NewFakeAPI(t, "")
	api.Seed(t, "parties", 1, testutil.BrokerJSON)

	tests := []struct {
		name string
		path string
	}{
		{name: "other asset manager", path: "/parties/2/BRK-1"},
		{name: "unknown id", path: "/parties/1/NOPE"},
		{name: "unknown class", path: "/assets/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := get(t, api.URL()+tt.path, "")
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("expected 404, got %d", resp.StatusCode)
			}
		})
	}
}

func TestFakeAPI_Search(t *testing.T) {
	api := testutil.NewFakeAPI(t, "")
	api.Seed(t, "positions", 1, testutil.PositionJSON)
	api.Seed(t, "positions", 1, testutil.SecondPositionJSON)

	_, body := get(t, api.URL()+"/positions?asset_id=MSFT", "")
	var recs []map[string]any
	if err := json.Unmarshal(body, &recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0]["account_id"] != "ACC-2" {
		t.Errorf("expected only the MSFT position, got %v", recs)
	}

	_, body = get(t, api.URL()+"/positions/1/BOOK-1", "")
	if err := json.Unmarshal(body, &recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("expected both positions in BOOK-1, got %d", len(recs))
	}
}

func TestFakeAPI_Deactivate(t *testing.T) {
	api := testutil.NewFakeAPI(t, "")
	api.Seed(t, "parties", 1, testutil.IndividualJSON)

	req, _ := http.NewRequest(http.MethodDelete, api.URL()+"/parties/1/IND-1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()

	raw, ok := api.Record("parties", 1, "IND-1")
	if !ok {
		t.Fatal("expected record to remain stored")
	}
	if !strings.Contains(string(raw), `"party_status":"Inactive"`) {
		t.Errorf("expected party to be inactive, got %s", raw)
	}
}
