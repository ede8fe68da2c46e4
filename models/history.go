package models

import (
	"strings"
	"time"
)

// HistoryDateLayout renders timestamps the way the billing screens show
// them, e.g. "1/2/2006, 3:04:05 PM". The date part before the comma is
// what day-wise grouping keys on.
const HistoryDateLayout = "1/2/2006, 3:04:05 PM"

// HistoryRecord is one completed payment. Records are append-only: never
// updated, never merged. The customer name is captured as a string and
// the lines as a copy, both decoupled from the live table record.
type HistoryRecord struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Date         string      `gorm:"type:varchar(50);not null;index" json:"date"`
	TableID      uint        `gorm:"not null;index" json:"table_id"`
	CustomerName string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	Items        []OrderLine `gorm:"serializer:json" json:"items"`
	Total        float64     `gorm:"type:decimal(10,2);not null" json:"total"`
}

// NewHistoryRecord snapshots a seat's order at settlement time. Total is
// computed from the lines, so it always equals their sum at creation.
func NewHistoryRecord(tableID uint, cu *Customer, now time.Time) HistoryRecord {
	items := make([]OrderLine, len(cu.Orders))
	copy(items, cu.Orders)
	return HistoryRecord{
		Date:         now.Format(HistoryDateLayout),
		TableID:      tableID,
		CustomerName: cu.Name,
		Items:        items,
		Total:        cu.Total(),
	}
}

// DateOnly returns the date part of the timestamp, split on the first
// comma.
func (h *HistoryRecord) DateOnly() string {
	if i := strings.Index(h.Date, ","); i >= 0 {
		return h.Date[:i]
	}
	return h.Date
}

// TimeOnly returns the time part of the timestamp, or the whole string
// when there is no comma.
func (h *HistoryRecord) TimeOnly() string {
	if i := strings.Index(h.Date, ","); i >= 0 {
		return strings.TrimSpace(h.Date[i+1:])
	}
	return h.Date
}
