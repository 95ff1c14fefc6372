package importer

import (
	"strings"

	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// DetectRecordType infers which collection a set of column names belongs
// to. The checks run in a fixed order (revenues, then expenses, then
// customers, then the bare-amount fallback) and that order is the tie-break
// policy: headers matching several groups resolve to the earliest group.
func DetectRecordType(fields []string) models.Kind {
	joined := strings.ToLower(strings.Join(fields, " "))
	has := func(token string) bool { return strings.Contains(joined, token) }

	if has("revenue") || has("income") || has("sales") || has("source") ||
		(has("amount") && has("customer_name")) ||
		(has("amount") && has("description") && !has("vendor")) {
		return models.KindRevenues
	}

	if has("expense") || has("cost") || has("vendor") || has("receipt") ||
		(has("amount") && has("category") && has("vendor")) {
		return models.KindExpenses
	}

	if has("customer") || has("client") ||
		(has("name") && has("email")) ||
		has("company") || has("phone") || has("acquisition") || has("status") {
		return models.KindCustomers
	}

	if has("amount") {
		return models.KindRevenues
	}

	return models.KindCustomers
}
