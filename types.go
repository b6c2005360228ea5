package patrimonio

import (
	"time"
)

// Table names as used on change-event channels and in the row store.
const (
	TableFamilyMembers = "family_members"
	TableBuildings     = "buildings"
	TableApartments    = "apartments"
	TableFlats         = "flats"
	TableLands         = "lands"
	TableTenants       = "tenants"
	TableRentPayments  = "rent_payments"
	TablePolicies      = "insurance_policies"
	TableDocuments     = "documents"
)

// Row change actions.
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event is a single row-level change notification. Subscribers are expected
// to refetch the affected collection; the event carries no row data.
type Event struct {
	Table     string    `json:"table"`
	Action    string    `json:"action"`
	RecordID  string    `json:"recordId"`
	Timestamp time.Time `json:"timestamp"`
}

// ChangeChannel returns the pub/sub channel carrying change events for a table.
func ChangeChannel(table string) string {
	return "changes:" + table
}
