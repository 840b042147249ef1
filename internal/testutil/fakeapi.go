package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// idFields maps each resource class to the record field addressed by the
// {id} path segment.
var idFields = map[string]string{
	"parties":      "party_id",
	"positions":    "asset_book_id",
	"transactions": "transaction_id",
}

// deactivation is the status change a DELETE applies per class.
var deactivation = map[string][2]string{
	"parties":      {"party_status", "Inactive"},
	"transactions": {"transaction_status", "Cancelled"},
}

// FakeAPIVersion is the version segment the fake API is served under.
const FakeAPIVersion = "v1.0"

const fakeAPIPrefix = "/" + FakeAPIVersion

// RecordedRequest is a request received by a FakeAPI.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          []byte
}

type record struct {
	amid   int
	fields map[string]json.RawMessage
}

// FakeAPI is an in-memory AMaaS API served over HTTP. It keeps records as raw
// wire JSON, so tests exercise the real transport and parsers end to end.
type FakeAPI struct {
	Server *httptest.Server

	token    string
	mu       sync.Mutex
	records  map[string][]*record
	requests []RecordedRequest
}

// NewFakeAPI starts a fake API. When token is non-empty every request must
// carry it in the Authorization header. The server is closed on test cleanup.
func NewFakeAPI(t *testing.T, token string) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{token: token, records: map[string][]*record{}}

	r := gin.New()
	api := r.Group(fakeAPIPrefix, f.recordRequest, f.authorize)
	api.GET("/:class", f.search)
	api.GET("/:class/:amid", f.list)
	api.GET("/:class/:amid/:id", f.get)
	api.POST("/:class/:amid", f.create)
	api.PUT("/:class/:amid/:id", f.replace)
	api.PATCH("/:class/:amid/:id", f.patch)
	api.DELETE("/:class/:amid/:id", f.deactivate)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake API, including the version segment.
func (f *FakeAPI) URL() string { return f.Server.URL + fakeAPIPrefix }

// Seed stores a raw wire record for class under amid.
func (f *FakeAPI) Seed(t *testing.T, class string, amid int, raw string) {
	t.Helper()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		t.Fatalf("failed to seed %s record: %v", class, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[class] = append(f.records[class], &record{amid: amid, fields: fields})
}

// Requests returns the requests received so far. Paths are relative to URL.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// Record returns the stored record for class/amid/id as raw JSON.
func (f *FakeAPI) Record(class string, amid int, id string) (json.RawMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.matching(class, amid, id) {
		raw, _ := json.Marshal(rec.fields)
		return raw, true
	}
	return nil, false
}

func (f *FakeAPI) recordRequest(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:        c.Request.Method,
		Path:          strings.TrimPrefix(c.Request.URL.Path, fakeAPIPrefix),
		RawQuery:      c.Request.URL.RawQuery,
		Authorization: c.GetHeader("Authorization"),
		Body:          body,
	})
	f.mu.Unlock()
	c.Next()
}

func (f *FakeAPI) authorize(c *gin.Context) {
	if f.token != "" && c.GetHeader("Authorization") != f.token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if _, ok := idFields[c.Param("class")]; !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown class"})
		return
	}
	c.Next()
}

func (f *FakeAPI) search(c *gin.Context) {
	class := c.Param("class")
	query := c.Request.URL.Query()

	f.mu.Lock()
	defer f.mu.Unlock()
	out := []map[string]json.RawMessage{}
	for _, rec := range f.records[class] {
		match := true
		for key := range query {
			if fieldString(rec.fields[key]) != query.Get(key) {
				match = false
				break
			}
		}
		if match {
			out = append(out, rec.fields)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) list(c *gin.Context) {
	amid, ok := parseAMID(c)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := []map[string]json.RawMessage{}
	for _, rec := range f.matching(c.Param("class"), amid, "") {
		out = append(out, rec.fields)
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) get(c *gin.Context) {
	amid, ok := parseAMID(c)
	if !ok {
		return
	}
	class := c.Param("class")

	f.mu.Lock()
	defer f.mu.Unlock()
	found := f.matching(class, amid, c.Param("id"))
	if len(found) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	// Positions are addressed by book, which may hold any number of them.
	if class == "positions" {
		out := make([]map[string]json.RawMessage, 0, len(found))
		for _, rec := range found {
			out = append(out, rec.fields)
		}
		c.JSON(http.StatusOK, out)
		return
	}
	c.JSON(http.StatusOK, found[0].fields)
}

func (f *FakeAPI) create(c *gin.Context) {
	amid, ok := parseAMID(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	class := c.Param("class")
	f.records[class] = append(f.records[class], &record{amid: amid, fields: fields})
	c.JSON(http.StatusCreated, fields)
}

func (f *FakeAPI) replace(c *gin.Context) {
	f.update(c, func(rec *record, fields map[string]json.RawMessage) {
		rec.fields = fields
	})
}

func (f *FakeAPI) patch(c *gin.Context) {
	f.update(c, func(rec *record, fields map[string]json.RawMessage) {
		for k, v := range fields {
			rec.fields[k] = v
		}
	})
}

func (f *FakeAPI) update(c *gin.Context, apply func(*record, map[string]json.RawMessage)) {
	amid, ok := parseAMID(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	found := f.matching(c.Param("class"), amid, c.Param("id"))
	if len(found) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	apply(found[0], fields)
	c.JSON(http.StatusOK, found[0].fields)
}

func (f *FakeAPI) deactivate(c *gin.Context) {
	amid, ok := parseAMID(c)
	if !ok {
		return
	}
	class := c.Param("class")

	f.mu.Lock()
	defer f.mu.Unlock()
	found := f.matching(class, amid, c.Param("id"))
	if len(found) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if change, ok := deactivation[class]; ok {
		status, _ := json.Marshal(change[1])
		found[0].fields[change[0]] = status
	}
	c.JSON(http.StatusOK, found[0].fields)
}

// matching returns the records of class under amid whose id field equals id.
// An empty id matches every record. Callers must hold f.mu.
func (f *FakeAPI) matching(class string, amid int, id string) []*record {
	var out []*record
	for _, rec := range f.records[class] {
		if rec.amid != amid {
			continue
		}
		if id != "" && fieldString(rec.fields[idFields[class]]) != id {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func parseAMID(c *gin.Context) (int, bool) {
	amid, err := strconv.Atoi(c.Param("amid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset manager id"})
		return 0, false
	}
	return amid, true
}

func bindFields(c *gin.Context) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil || fields == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return nil, false
	}
	return fields, true
}

// fieldString renders a raw JSON scalar for comparison with a path or query value.
func fieldString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
