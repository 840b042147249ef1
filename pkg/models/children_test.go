package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func boolPtr(b bool) *bool { return &b }

func TestActiveOrDefault(t *testing.T) {
	if !ActiveOrDefault(nil) {
		t.Error("expected nil to default to true")
	}
	if ActiveOrDefault(boolPtr(false)) {
		t.Error("expected explicit false to stay false")
	}
	if !ActiveOrDefault(boolPtr(true)) {
		t.Error("expected explicit true to stay true")
	}
}

func TestAddress_Active(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "omitted", raw: `{}`, want: true},
		{name: "null", raw: `{"active": null}`, want: true},
		{name: "false", raw: `{"active": false}`, want: false},
		{name: "true", raw: `{"active": true}`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Address
			if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Active != tt.want {
				t.Errorf("expected active %v, got %v", tt.want, a.Active)
			}
		})
	}
}

func TestChildren_DefaultActive(t *testing.T) {
	children := map[string]Child{
		"email":     &Email{},
		"reference": &Reference{},
		"code":      &Code{},
		"comment":   &Comment{},
		"link":      &Link{},
		"party":     &TransactionParty{},
		"charge":    &Charge{},
	}

	for name, child := range children {
		t.Run(name, func(t *testing.T) {
			if err := json.Unmarshal([]byte(`{"version": 2}`), child); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !child.IsActive() {
				t.Errorf("expected %s to default to active", name)
			}
		})
	}
}

func TestAddress_WireFields(t *testing.T) {
	raw := `{
		"address_primary": true,
		"line_one": "1 Raffles Place",
		"line_two": "#20-01",
		"city": "Singapore",
		"region": "Central",
		"postal_code": "048616",
		"country_id": "SGP",
		"active": false,
		"created_by": "alice",
		"version": 3
	}`

	var a Address
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.AddressPrimary || a.LineOne != "1 Raffles Place" || a.LineTwo != "#20-01" {
		t.Errorf("address lines mismatch: %+v", a)
	}
	if a.City != "Singapore" || a.Region != "Central" || a.PostalCode != "048616" || a.CountryID != "SGP" {
		t.Errorf("address location mismatch: %+v", a)
	}
	if a.Active {
		t.Error("expected inactive address")
	}
	if a.CreatedBy != "alice" || a.Version != 3 {
		t.Errorf("audit fields mismatch: %+v", a.Entity)
	}
}

func TestCharge_Flags(t *testing.T) {
	var c Charge
	if err := json.Unmarshal([]byte(`{"charge_value": "1.25", "currency": "USD"}`), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Active || !c.NetAffecting {
		t.Errorf("expected active, net affecting charge, got %+v", c)
	}
	if !c.ChargeValue.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("expected charge value 1.25, got %s", c.ChargeValue)
	}

	if err := json.Unmarshal([]byte(`{"charge_value": 2, "net_affecting": false}`), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NetAffecting {
		t.Error("expected net_affecting false to be kept")
	}
}

func TestChild_RejectsNonBooleanActive(t *testing.T) {
	var r Reference
	if err := json.Unmarshal([]byte(`{"active": "yes"}`), &r); err == nil {
		t.Fatal("expected error for non-boolean active")
	}
}

func TestConstructors_Active(t *testing.T) {
	tests := []struct {
		name  string
		child Child
		want  bool
	}{
		{name: "address default", child: NewAddress(Address{City: "Singapore"}), want: true},
		{name: "address explicit false", child: NewAddress(Address{City: "Singapore"}, WithActive(false)), want: false},
		{name: "address ignores literal flag", child: NewAddress(Address{Active: false}), want: true},
		{name: "email default", child: NewEmail("ops@amaas.test", true), want: true},
		{name: "email explicit false", child: NewEmail("ops@amaas.test", false, WithActive(false)), want: false},
		{name: "reference default", child: NewReference("R-1"), want: true},
		{name: "reference explicit false", child: NewReference("R-1", WithActive(false)), want: false},
		{name: "code default", child: NewCode("MOMENTUM"), want: true},
		{name: "comment default", child: NewComment("late fill"), want: true},
		{name: "comment explicit false", child: NewComment("late fill", WithActive(false)), want: false},
		{name: "link default", child: NewLink("TX-0"), want: true},
		{name: "party default", child: NewTransactionParty("BRK-1"), want: true},
		{name: "party explicit true", child: NewTransactionParty("BRK-1", WithActive(true)), want: true},
		{name: "charge default", child: NewCharge(decimal.NewFromInt(1), "USD"), want: true},
		{name: "charge explicit false", child: NewCharge(decimal.NewFromInt(1), "USD", WithActive(false)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.child.IsActive(); got != tt.want {
				t.Errorf("expected active %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewCharge_NetAffecting(t *testing.T) {
	if c := NewCharge(decimal.NewFromInt(5), "USD"); !c.NetAffecting {
		t.Error("expected charge to default to net affecting")
	}
	if c := NewCharge(decimal.NewFromInt(5), "USD", WithNetAffecting(false)); c.NetAffecting || !c.Active {
		t.Errorf("expected active, non net affecting charge, got %+v", c)
	}
}

func TestNewIndividual_KeepsChildFlags(t *testing.T) {
	p := NewIndividual(Party{
		Addresses: map[string]*Address{"Registered": NewAddress(Address{City: "Singapore"})},
		Emails:    map[string]*Email{"Old": NewEmail("old@amaas.test", false, WithActive(false))},
	})

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var wire struct {
		Addresses map[string]map[string]any `json:"addresses"`
		Emails    map[string]map[string]any `json:"emails"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wire.Addresses["Registered"]["active"] != true {
		t.Errorf("expected registered address to marshal active, got %v", wire.Addresses["Registered"]["active"])
	}
	if wire.Emails["Old"]["active"] != false {
		t.Errorf("expected old email to marshal inactive, got %v", wire.Emails["Old"]["active"])
	}
}
