package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Parallel()

	t.Run("unmarshals numbers", func(t *testing.T) {
		t.Parallel()
		var id ID
		require.NoError(t, json.Unmarshal([]byte("42"), &id))
		require.Equal(t, ID(42), id)
		require.True(t, id.Valid())
	})

	t.Run("unmarshals numeric strings and floats", func(t *testing.T) {
		t.Parallel()
		var id ID
		require.NoError(t, json.Unmarshal([]byte(`"7"`), &id))
		require.Equal(t, ID(7), id)
		require.NoError(t, json.Unmarshal([]byte("3.0"), &id))
		require.Equal(t, ID(3), id)
	})

	t.Run("maps null and garbage to zero", func(t *testing.T) {
		t.Parallel()
		var id ID
		require.NoError(t, json.Unmarshal([]byte("null"), &id))
		require.Equal(t, ID(0), id)
		require.False(t, id.Valid())

		require.NoError(t, json.Unmarshal([]byte(`"abc"`), &id))
		require.Equal(t, ID(0), id)
	})

	t.Run("ParseID covers raw cell values", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, ID(5), ParseID(float64(5)))
		require.Equal(t, ID(5), ParseID("5"))
		require.Equal(t, ID(5), ParseID(5))
		require.Equal(t, ID(0), ParseID(nil))
		require.Equal(t, ID(0), ParseID("n/a"))
	})
}

func TestDate(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through JSON", func(t *testing.T) {
		t.Parallel()
		d := NewDate(2024, time.August, 1)
		raw, err := json.Marshal(d)
		require.NoError(t, err)
		require.Equal(t, `"2024-08-01"`, string(raw))

		var back Date
		require.NoError(t, json.Unmarshal(raw, &back))
		require.Equal(t, d, back)
	})

	t.Run("zero date marshals as null", func(t *testing.T) {
		t.Parallel()
		raw, err := json.Marshal(Date{})
		require.NoError(t, err)
		require.Equal(t, "null", string(raw))

		var d Date
		require.NoError(t, json.Unmarshal([]byte("null"), &d))
		require.True(t, d.IsZero())
	})

	t.Run("parses common foreign layouts", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{
			"2024-08-01",
			"2024-08-01T10:30:00Z",
			"2024/08/01",
			"08/01/2024",
		} {
			d, err := ParseDate(input)
			require.NoError(t, err, input)
			require.Equal(t, "2024-08-01", d.String(), input)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		_, err := ParseDate("next tuesday")
		require.Error(t, err)
	})

	t.Run("period keys", func(t *testing.T) {
		t.Parallel()
		d := NewDate(2024, time.August, 10)
		require.Equal(t, "2024-08", d.MonthKey())
		require.Equal(t, "2024-Q3", d.QuarterKey())
		require.Equal(t, "2024", d.YearKey())
	})
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	r := DateRange{From: NewDate(2024, time.July, 1), To: NewDate(2024, time.July, 31)}

	t.Run("contains bounds inclusively", func(t *testing.T) {
		t.Parallel()
		require.True(t, r.Contains(NewDate(2024, time.July, 1)))
		require.True(t, r.Contains(NewDate(2024, time.July, 31)))
		require.False(t, r.Contains(NewDate(2024, time.August, 1)))
		require.False(t, r.Contains(Date{}))
	})

	t.Run("filter picks the right date field per kind", func(t *testing.T) {
		t.Parallel()
		data := SampleDataset()
		filtered := data.Filter(r)
		require.Len(t, filtered.Customers, 1) // Global Enterprises, acquired 2024-07-10
		require.Len(t, filtered.Revenues, 2)  // 07-28 and 07-25
		require.Len(t, filtered.Expenses, 3)  // 07-30, 07-28, 07-25
	})

	t.Run("zero range passes everything through", func(t *testing.T) {
		t.Parallel()
		data := SampleDataset()
		filtered := data.Filter(DateRange{})
		require.Equal(t, data, filtered)
	})
}

func TestPatches(t *testing.T) {
	t.Parallel()

	t.Run("customer patch only touches set fields", func(t *testing.T) {
		t.Parallel()
		c := SampleDataset().Customers[0]
		status := StatusInactive
		c.Apply(CustomerPatch{Status: &status})
		require.Equal(t, StatusInactive, c.Status)
		require.Equal(t, "Acme Corporation", c.Name)
		require.Equal(t, "contact@acme.com", c.Email)
	})

	t.Run("revenue patch updates amount and keeps source", func(t *testing.T) {
		t.Parallel()
		r := SampleDataset().Revenues[0]
		amount := decimal.NewFromInt(1600)
		r.Apply(RevenuePatch{Amount: &amount})
		require.True(t, r.Amount.Equal(decimal.NewFromInt(1600)))
		require.Equal(t, "Software License", r.Source)
	})

	t.Run("settings patch", func(t *testing.T) {
		t.Parallel()
		s := DefaultSettings()
		backup := false
		currency := "EUR"
		s.Apply(SettingsPatch{AutoBackup: &backup, Currency: &currency})
		require.False(t, s.AutoBackup)
		require.Equal(t, "EUR", s.Currency)
		require.Equal(t, "light", s.Theme)
	})
}

func TestDatasetRoundTrip(t *testing.T) {
	t.Parallel()

	data := SampleDataset()
	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var back Dataset
	require.NoError(t, json.Unmarshal(raw, &back))

	require.Len(t, back.Customers, len(data.Customers))
	require.Len(t, back.Revenues, len(data.Revenues))
	require.Len(t, back.Expenses, len(data.Expenses))
	require.True(t, back.Revenues[0].Amount.Equal(data.Revenues[0].Amount))
	require.Equal(t, data.Customers[2].LastPurchaseDate, back.Customers[2].LastPurchaseDate)
}
