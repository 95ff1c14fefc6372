package exporter

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// Template produces an import template for one record kind: a single
// canonical example record in the requested format, without metadata.
func Template(kind models.Kind, format string) ([]File, error) {
	data, err := templateDataset(kind)
	if err != nil {
		return nil, err
	}
	return Export(data, format, Options{
		BaseName:        fmt.Sprintf("bizgrow-%s-template", kind),
		IncludeMetadata: false,
	})
}

func templateDataset(kind models.Kind) (models.Dataset, error) {
	switch kind {
	case models.KindCustomers:
		last := models.NewDate(2024, time.August, 1)
		return models.Dataset{Customers: []models.Customer{{
			Name:             "John Doe",
			Email:            "john@example.com",
			Phone:            "+1-555-0123",
			Company:          "Example Corp",
			Status:           models.StatusActive,
			AcquisitionDate:  models.NewDate(2024, time.January, 15),
			TotalValue:       decimal.NewFromInt(5000),
			LastPurchaseDate: &last,
		}}}, nil
	case models.KindRevenues:
		return models.Dataset{Revenues: []models.Revenue{{
			Amount:       decimal.NewFromInt(1500),
			Source:       "Product Sales",
			Category:     "product_sales",
			Date:         models.NewDate(2024, time.August, 1),
			CustomerName: "John Doe",
			Description:  "Monthly subscription",
		}}}, nil
	case models.KindExpenses:
		return models.Dataset{Expenses: []models.Expense{{
			Amount:      decimal.NewFromInt(500),
			Category:    "software",
			Vendor:      "Software Company",
			Date:        models.NewDate(2024, time.August, 1),
			Description: "Monthly software license",
		}}}, nil
	default:
		return models.Dataset{}, fmt.Errorf("no template for data type: %s", kind)
	}
}
