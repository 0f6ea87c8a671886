// Package dashboard aggregates the asset table into the figures shown on the
// front page.
package dashboard

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/myit/inventory/internal/model"
)

// WarrantyWindowDays is how far ahead warranty expiries raise an alert.
const WarrantyWindowDays = 30

// OtherCategory collects assets without a category.
const OtherCategory = "Other"

// warrantyLayout accepts dates with or without zero-padded month and day.
const warrantyLayout = "2006-1-2"

// Stats is the dashboard summary.
type Stats struct {
	Total          int             `json:"total"`
	Disposed       int             `json:"disposed"`
	IncomingMonth  int             `json:"incoming_month"`
	Categories     map[string]int  `json:"categories"`
	WarrantyAlerts []WarrantyAlert `json:"warranty_alerts"`
}

// WarrantyAlert is an asset whose warranty ends within the alert window.
type WarrantyAlert struct {
	model.Asset
	DaysLeft int `json:"days_left"`
}

// Compute summarizes assets as of now in a single pass.
//
// Assets created in now's calendar month count as incoming; the comparison is
// on the "YYYY-MM" prefix of CreatedAt. A warranty alert is raised for every
// asset whose warranty date is a valid calendar date between today and
// today+WarrantyWindowDays, both inclusive. Alerts are ordered soonest first.
// Unparsable warranty dates are skipped.
func Compute(assets []model.Asset, now time.Time) Stats {
	stats := Stats{
		Total:          len(assets),
		Categories:     make(map[string]int),
		WarrantyAlerts: []WarrantyAlert{},
	}

	month := now.Format("2006-01")
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	limit := today.AddDate(0, 0, WarrantyWindowDays)

	for _, a := range assets {
		category := strings.TrimSpace(a.Category)
		if category == "" {
			category = OtherCategory
		}
		stats.Categories[category]++

		if a.Status == model.AssetStatusDisposed {
			stats.Disposed++
		}

		if a.CreatedAt != "" && strings.HasPrefix(a.CreatedAt, month) {
			stats.IncomingMonth++
		}

		if a.WarrantyDate == "" {
			continue
		}
		expires, err := time.Parse(warrantyLayout, a.WarrantyDate)
		if err != nil {
			continue
		}
		if expires.Before(today) || expires.After(limit) {
			continue
		}
		stats.WarrantyAlerts = append(stats.WarrantyAlerts, WarrantyAlert{
			Asset:    a,
			DaysLeft: int(expires.Sub(today).Hours()) / 24,
		})
	}

	slices.SortStableFunc(stats.WarrantyAlerts, func(x, y WarrantyAlert) int {
		return cmp.Compare(x.DaysLeft, y.DaysLeft)
	})

	return stats
}
