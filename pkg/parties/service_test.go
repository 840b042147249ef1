package parties_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/amaas/amaas-core-sdk-go/internal/testutil"
	"github.com/amaas/amaas-core-sdk-go/pkg/models"
	"github.com/amaas/amaas-core-sdk-go/pkg/network"
	"github.com/amaas/amaas-core-sdk-go/pkg/parties"
	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

// --- mock transport ---

type mockTransport struct {
	readFn   func(p network.Params) (json.RawMessage, error)
	calls    []network.Params
	response json.RawMessage
}

func (m *mockTransport) record(p network.Params) (json.RawMessage, error) {
	m.calls = append(m.calls, p)
	return m.response, nil
}

func (m *mockTransport) Read(_ context.Context, p network.Params) (json.RawMessage, error) {
	if m.readFn != nil {
		m.calls = append(m.calls, p)
		return m.readFn(p)
	}
	return m.record(p)
}

func (m *mockTransport) Create(_ context.Context, p network.Params) (json.RawMessage, error) {
	return m.record(p)
}

func (m *mockTransport) Replace(_ context.Context, p network.Params) (json.RawMessage, error) {
	return m.record(p)
}

func (m *mockTransport) PartialUpdate(_ context.Context, p network.Params) (json.RawMessage, error) {
	return m.record(p)
}

func (m *mockTransport) Delete(_ context.Context, p network.Params) (json.RawMessage, error) {
	return m.record(p)
}

func (m *mockTransport) Query(_ context.Context, p network.Params) (json.RawMessage, error) {
	return m.record(p)
}

func TestRetrieve_Single(t *testing.T) {
	tr := &mockTransport{response: json.RawMessage(testutil.BrokerJSON)}
	svc := parties.NewService(tr, nil)

	res, err := svc.Retrieve(context.Background(), 1, "BRK-1", "tok")
	testutil.AssertNoError(t, err)
	if res.Many != nil {
		t.Errorf("expected no list, got %v", res.Many)
	}
	if _, ok := res.One.(*models.Broker); !ok {
		t.Fatalf("expected *models.Broker, got %T", res.One)
	}

	if len(tr.calls) != 1 {
		t.Fatalf("expected 1 transport call, got %d", len(tr.calls))
	}
	got := tr.calls[0]
	if got.Class != "parties" || got.AMID != 1 || got.ResourceID != "BRK-1" || got.Token != "tok" {
		t.Errorf("unexpected params: %+v", got)
	}
}

func TestRetrieve_List(t *testing.T) {
	tr := &mockTransport{response: json.RawMessage("[" + testutil.IndividualJSON + "," + testutil.BrokerJSON + "]")}
	svc := parties.NewService(tr, nil)

	res, err := svc.Retrieve(context.Background(), 1, "", "tok")
	testutil.AssertNoError(t, err)
	if res.One != nil {
		t.Errorf("expected no single result, got %T", res.One)
	}
	if len(res.Many) != 2 {
		t.Fatalf("expected 2 parties, got %d", len(res.Many))
	}
	if _, ok := res.Many[0].(*models.Individual); !ok {
		t.Errorf("expected *models.Individual, got %T", res.Many[0])
	}
}

func TestRetrieve_TransportErrorIsNotParsed(t *testing.T) {
	boom := apperrors.WithMessage(apperrors.ErrTransport, "connection reset")
	tr := &mockTransport{readFn: func(network.Params) (json.RawMessage, error) {
		return json.RawMessage(`not json`), boom
	}}
	svc := parties.NewService(tr, nil)

	res, err := svc.Retrieve(context.Background(), 1, "BRK-1", "tok")
	if err != boom {
		t.Fatalf("expected the transport error verbatim, got %v", err)
	}
	if res.One != nil || res.Many != nil {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestRetrieve_InvalidParams(t *testing.T) {
	tr := &mockTransport{}
	svc := parties.NewService(tr, nil)

	_, err := svc.Retrieve(context.Background(), 0, "BRK-1", "tok")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
	if len(tr.calls) != 0 {
		t.Errorf("expected no transport call, got %d", len(tr.calls))
	}
}

func TestInsert_SendsWireProjection(t *testing.T) {
	tr := &mockTransport{response: json.RawMessage(`{"party_id":"EX-1"}`)}
	svc := parties.NewService(tr, nil)

	exchange := models.NewExchange(models.Party{AssetManagerID: 4, PartyID: "EX-1"})
	raw, err := svc.Insert(context.Background(), exchange, "tok")
	testutil.AssertNoError(t, err)
	if string(raw) != `{"party_id":"EX-1"}` {
		t.Errorf("expected response passed through, got %s", raw)
	}

	got := tr.calls[0]
	if got.AMID != 4 {
		t.Errorf("expected AMID taken from the party, got %d", got.AMID)
	}
	var wire map[string]any
	if err := json.Unmarshal(got.Data, &wire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wire["party_type"] != "Exchange" || wire["party_class"] != "Company" || wire["party_id"] != "EX-1" {
		t.Errorf("unexpected wire data: %s", got.Data)
	}
}

func TestInsert_NilParty(t *testing.T) {
	svc := parties.NewService(&mockTransport{}, nil)
	_, err := svc.Insert(context.Background(), nil, "tok")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestWrites_RequireResourceID(t *testing.T) {
	tr := &mockTransport{}
	svc := parties.NewService(tr, nil)
	ctx := context.Background()
	party := models.NewIndividual(models.Party{AssetManagerID: 1, PartyID: "IND-1"})

	_, err := svc.Amend(ctx, party, 1, "", "tok")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.PartialAmend(ctx, map[string]any{"description": "x"}, 1, "", "tok")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.Deactivate(ctx, 1, "", "tok")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.PartialAmend(ctx, map[string]any{}, 1, "IND-1", "tok")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	if len(tr.calls) != 0 {
		t.Errorf("expected no transport calls, got %d", len(tr.calls))
	}
}

func TestService_AgainstFakeAPI(t *testing.T) {
	api := testutil.NewFakeAPI(t, "secret")
	api.Seed(t, network.ClassParties, 1, testutil.BrokerJSON)
	svc := parties.NewService(network.NewHTTPTransport(api.URL(), nil), nil)
	ctx := context.Background()

	fund := models.NewFund(models.Party{
		AssetManagerID: 1,
		PartyID:        "FUND-1",
		References:     map[string]*models.Reference{"Admin": models.NewReference("ADM-1")},
	})
	_, err := svc.Insert(ctx, fund, "secret")
	testutil.AssertNoError(t, err)

	res, err := svc.Retrieve(ctx, 1, "FUND-1", "secret")
	testutil.AssertNoError(t, err)
	got, ok := res.One.(*models.Fund)
	if !ok {
		t.Fatalf("expected *models.Fund, got %T", res.One)
	}
	if got.References["Admin"].ReferenceValue != "ADM-1" {
		t.Errorf("unexpected references: %+v", got.References)
	}

	fund.Description = "Amended"
	_, err = svc.Amend(ctx, fund, 1, "FUND-1", "secret")
	testutil.AssertNoError(t, err)

	_, err = svc.PartialAmend(ctx, map[string]any{"party_status": "Suspended"}, 1, "BRK-1", "secret")
	testutil.AssertNoError(t, err)

	_, err = svc.Deactivate(ctx, 1, "FUND-1", "secret")
	testutil.AssertNoError(t, err)

	res, err = svc.Retrieve(ctx, 1, "", "secret")
	testutil.AssertNoError(t, err)
	if len(res.Many) != 2 {
		t.Fatalf("expected 2 parties, got %d", len(res.Many))
	}
	status := map[string]string{}
	desc := map[string]string{}
	for _, p := range res.Many {
		status[p.Base().PartyID] = p.Base().PartyStatus
		desc[p.Base().PartyID] = p.Base().Description
	}
	if status["FUND-1"] != "Inactive" || desc["FUND-1"] != "Amended" {
		t.Errorf("expected amended, inactive fund, got %q / %q", status["FUND-1"], desc["FUND-1"])
	}
	if status["BRK-1"] != "Suspended" {
		t.Errorf("expected patched broker status, got %q", status["BRK-1"])
	}

	_, err = svc.Retrieve(ctx, 1, "BRK-1", "wrong")
	testutil.AssertAppError(t, err, "UNAUTHORIZED")

	for _, req := range api.Requests() {
		if req.Method == "PATCH" && !strings.Contains(string(req.Body), `"party_status":"Suspended"`) {
			t.Errorf("unexpected patch body: %s", req.Body)
		}
	}
}

func TestRetrieve_NullBody(t *testing.T) {
	for _, body := range []string{"null", " null\n", ""} {
		tr := &mockTransport{response: json.RawMessage(body)}
		res, err := parties.NewService(tr, nil).Retrieve(context.Background(), 1, "P-404", "tok")
		testutil.AssertAppError(t, err, "INVALID_PAYLOAD")
		if res.One != nil || res.Many != nil {
			t.Errorf("body %q: expected empty result, got %+v", body, res)
		}
	}
}
