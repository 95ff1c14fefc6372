package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func datePtr(d Date) *Date { return &d }

// SampleDataset returns the starter records seeded on first run so the
// dashboard is not empty before the user imports anything.
func SampleDataset() Dataset {
	return Dataset{
		Customers: []Customer{
			{
				ID:               1,
				Name:             "Acme Corporation",
				Email:            "contact@acme.com",
				Phone:            "+1-555-0123",
				Company:          "Acme Corporation",
				Status:           StatusActive,
				AcquisitionDate:  NewDate(2024, time.January, 15),
				TotalValue:       decimal.NewFromInt(25000),
				LastPurchaseDate: datePtr(NewDate(2024, time.August, 10)),
			},
			{
				ID:               2,
				Name:             "Tech Solutions Inc",
				Email:            "info@techsolutions.com",
				Phone:            "+1-555-0456",
				Company:          "Tech Solutions Inc",
				Status:           StatusActive,
				AcquisitionDate:  NewDate(2024, time.February, 20),
				TotalValue:       decimal.NewFromInt(18500),
				LastPurchaseDate: datePtr(NewDate(2024, time.August, 5)),
			},
			{
				ID:              3,
				Name:            "Global Enterprises",
				Email:           "sales@global.com",
				Phone:           "+1-555-0789",
				Company:         "Global Enterprises",
				Status:          StatusPotential,
				AcquisitionDate: NewDate(2024, time.July, 10),
				TotalValue:      decimal.NewFromInt(5000),
			},
		},
		Revenues: []Revenue{
			{
				ID:           1,
				Amount:       decimal.NewFromInt(8500),
				Source:       "Software License",
				Category:     "licensing",
				Date:         NewDate(2024, time.August, 10),
				CustomerName: "Acme Corporation",
				Description:  "Annual software license renewal",
			},
			{
				ID:           2,
				Amount:       decimal.NewFromInt(12000),
				Source:       "Consulting Services",
				Category:     "consulting",
				Date:         NewDate(2024, time.August, 5),
				CustomerName: "Tech Solutions Inc",
				Description:  "Q3 consulting project completion",
			},
			{
				ID:           3,
				Amount:       decimal.NewFromInt(3200),
				Source:       "Product Sales",
				Category:     "product_sales",
				Date:         NewDate(2024, time.August, 1),
				CustomerName: "Global Enterprises",
				Description:  "Initial product purchase",
			},
			{
				ID:           4,
				Amount:       decimal.NewFromInt(5500),
				Source:       "Subscription",
				Category:     "subscription",
				Date:         NewDate(2024, time.July, 28),
				CustomerName: "Acme Corporation",
				Description:  "Monthly subscription fee",
			},
			{
				ID:           5,
				Amount:       decimal.NewFromInt(7800),
				Source:       "Service Revenue",
				Category:     "service_revenue",
				Date:         NewDate(2024, time.July, 25),
				CustomerName: "Tech Solutions Inc",
				Description:  "Support services",
			},
		},
		Expenses: []Expense{
			{
				ID:          1,
				Amount:      decimal.NewFromInt(2500),
				Category:    "software",
				Vendor:      "Microsoft",
				Date:        NewDate(2024, time.August, 1),
				Description: "Office 365 licenses",
			},
			{
				ID:          2,
				Amount:      decimal.NewFromInt(3200),
				Category:    "rent",
				Vendor:      "Property Management Co",
				Date:        NewDate(2024, time.August, 1),
				Description: "Monthly office rent",
			},
			{
				ID:          3,
				Amount:      decimal.NewFromInt(1200),
				Category:    "marketing",
				Vendor:      "Google Ads",
				Date:        NewDate(2024, time.July, 30),
				Description: "Online advertising campaign",
			},
			{
				ID:          4,
				Amount:      decimal.NewFromInt(800),
				Category:    "utilities",
				Vendor:      "Electric Company",
				Date:        NewDate(2024, time.July, 28),
				Description: "Monthly electricity bill",
			},
			{
				ID:          5,
				Amount:      decimal.NewFromInt(1500),
				Category:    "office_supplies",
				Vendor:      "Office Depot",
				Date:        NewDate(2024, time.July, 25),
				Description: "Office furniture and supplies",
			},
		},
	}
}
