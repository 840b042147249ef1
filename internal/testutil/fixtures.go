package testutil

// Wire records in the shape the AMaaS API returns them.
const (
	// BrokerJSON is a broker with one child in each collection; the
	// reference omits active and the email is inactive.
	BrokerJSON = `{
		"asset_manager_id": 1,
		"party_id": "BRK-1",
		"party_status": "Active",
		"party_class": "Company",
		"party_type": "Broker",
		"description": "Prime broker",
		"addresses": {
			"Registered": {
				"address_primary": true,
				"line_one": "1 Raffles Place",
				"city": "Singapore",
				"postal_code": "048616",
				"country_id": "SGP",
				"active": true,
				"version": 1
			}
		},
		"emails": {
			"Ops": {"email_primary": false, "email": "ops@broker.test", "active": false}
		},
		"references": {
			"LEI": {"reference_value": "5493001KJTIIGC8Y1R12"}
		},
		"created_by": "alice",
		"updated_by": "bob",
		"created_time": "2024-01-02T03:04:05Z",
		"updated_time": "2024-02-03T04:05:06Z",
		"version": 2
	}`

	// IndividualJSON is an individual without any child collections.
	IndividualJSON = `{
		"asset_manager_id": 1,
		"party_id": "IND-1",
		"party_status": "Active",
		"party_class": "Individual",
		"party_type": "Individual",
		"description": "Account holder"
	}`

	// UnknownPartyJSON carries a party_type no constructor handles.
	UnknownPartyJSON = `{
		"asset_manager_id": 1,
		"party_id": "ALIEN-1",
		"party_type": "Martian"
	}`

	// TransactionJSON is a trade of 100 units at 10.5 with one net affecting charge.
	TransactionJSON = `{
		"asset_manager_id": 1,
		"asset_book_id": "BOOK-1",
		"counterparty_book_id": "CPTY-1",
		"transaction_action": "Buy",
		"asset_id": "AAPL",
		"quantity": "100",
		"transaction_date": "2024-03-01",
		"settlement_date": "2024-03-05",
		"price": "10.5",
		"transaction_currency": "USD",
		"settlement_currency": "USD",
		"transaction_type": "Trade",
		"transaction_status": "New",
		"execution_time": "2024-03-01T14:30:00Z",
		"transaction_id": "TX-1",
		"charges": {
			"Commission": {"charge_value": "5.25", "currency": "USD"},
			"Rebate": {"charge_value": "1", "currency": "USD", "net_affecting": false}
		},
		"codes": {"Strategy": {"code_value": "MOMENTUM"}},
		"comments": {"Trader": {"comment_value": "filled in two clips", "active": false}},
		"links": {"Allocation": {"linked_transaction_id": "TX-0"}},
		"parties": {"Broker": {"party_id": "BRK-1"}},
		"references": {
			"AMaaS": {"reference_value": "TX-1"},
			"Broker": {"reference_value": "B-77"}
		},
		"postings": []
	}`

	// PositionJSON is a holding of 250.5 units valid through 2024.
	PositionJSON = `{
		"asset_manager_id": 1,
		"asset_book_id": "BOOK-1",
		"asset_id": "AAPL",
		"quantity": "250.5",
		"valid_from": "2024-01-01",
		"valid_to": "2024-12-31",
		"internal_id": "INT-1",
		"client_id": "CL-1",
		"accounting_type": "Transaction Date",
		"account_id": "ACC-1",
		"version": 1
	}`

	// SecondPositionJSON shares BOOK-1 with PositionJSON.
	SecondPositionJSON = `{
		"asset_manager_id": 1,
		"asset_book_id": "BOOK-1",
		"asset_id": "MSFT",
		"quantity": 40,
		"valid_from": "2024-01-01",
		"account_id": "ACC-2"
	}`
)
