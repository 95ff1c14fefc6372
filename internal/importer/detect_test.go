package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

func TestDetectRecordType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		headers []string
		want    models.Kind
	}{
		{"expense headers", []string{"amount", "vendor", "category"}, models.KindExpenses},
		{"revenue headers", []string{"amount", "source", "customer_name"}, models.KindRevenues},
		{"customer headers", []string{"name", "email", "company"}, models.KindCustomers},
		{"bare amount falls back to revenues", []string{"amount", "date"}, models.KindRevenues},
		{"explicit revenue token", []string{"revenue", "period"}, models.KindRevenues},
		{"income token", []string{"income", "month"}, models.KindRevenues},
		{"expense token", []string{"expense", "when"}, models.KindExpenses},
		{"receipt token", []string{"receipt", "total"}, models.KindExpenses},
		{"client token", []string{"client", "address"}, models.KindCustomers},
		{"phone token", []string{"phone", "notes"}, models.KindCustomers},
		{"amount with description but no vendor", []string{"amount", "description"}, models.KindRevenues},
		{"amount with description and vendor", []string{"amount", "description", "vendor"}, models.KindExpenses},
		{"nothing recognizable", []string{"foo", "bar"}, models.KindCustomers},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, DetectRecordType(tc.headers))
		})
	}

	t.Run("ordering is the tie-break policy", func(t *testing.T) {
		t.Parallel()
		// "source" marks revenues even though "vendor" marks expenses:
		// the revenue group is checked first.
		require.Equal(t, models.KindRevenues, DetectRecordType([]string{"source", "vendor"}))
		// "cost" marks expenses even though "status" marks customers.
		require.Equal(t, models.KindExpenses, DetectRecordType([]string{"cost", "status"}))
	})
}
