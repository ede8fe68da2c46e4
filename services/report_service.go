package services

import (
	"sort"

	"github.com/snackpoint/pos/models"
)

// ItemStat aggregates sales per item name. Keying by name means two menu
// items that share a name are merged here; that matches how the history
// screen has always reported and is kept as-is.
type ItemStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DayGroup is one day's worth of payments, newest first.
type DayGroup struct {
	Date       string                 `json:"date"`
	OrderCount int                    `json:"order_count"`
	Total      float64                `json:"total"`
	Orders     []models.HistoryRecord `json:"orders"`
}

type SalesReport struct {
	TotalRevenue  float64    `json:"total_revenue"`
	TotalOrders   int        `json:"total_orders"`
	AvgOrderValue float64    `json:"avg_order_value"`
	DaysTracked   int        `json:"days_tracked"`
	TopItems      []ItemStat `json:"top_items"`
	Days          []DayGroup `json:"days"`
}

const topItemLimit = 5

// BuildSalesReport derives the full report from the history collection.
// Nothing is cached: the caller re-fetches and this recomputes on every
// request. Records must be passed newest-first; day groups and the rows
// within them keep that order.
func BuildSalesReport(records []models.HistoryRecord) SalesReport {
	report := SalesReport{
		TotalOrders: len(records),
		TopItems:    []ItemStat{},
		Days:        []DayGroup{},
	}

	dayIndex := make(map[string]int)
	itemIndex := make(map[string]int)
	var items []ItemStat

	for _, record := range records {
		report.TotalRevenue += record.Total

		day := record.DateOnly()
		di, ok := dayIndex[day]
		if !ok {
			di = len(report.Days)
			dayIndex[day] = di
			report.Days = append(report.Days, DayGroup{Date: day})
		}
		report.Days[di].Orders = append(report.Days[di].Orders, record)
		report.Days[di].OrderCount++
		report.Days[di].Total += record.Total

		for _, line := range record.Items {
			ii, ok := itemIndex[line.Name]
			if !ok {
				ii = len(items)
				itemIndex[line.Name] = ii
				items = append(items, ItemStat{Name: line.Name})
			}
			items[ii].Count += line.Qty
			items[ii].Revenue += line.Price * float64(line.Qty)
		}
	}

	if report.TotalOrders > 0 {
		report.AvgOrderValue = report.TotalRevenue / float64(report.TotalOrders)
	}
	report.DaysTracked = len(report.Days)

	// Ties keep first-seen order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if len(items) > topItemLimit {
		items = items[:topItemLimit]
	}
	report.TopItems = append(report.TopItems, items...)

	return report
}
