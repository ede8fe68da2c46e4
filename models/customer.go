package models

// Customer is one guest's running order at a table. The id is the
// creation timestamp in unix milliseconds; it is unique within the table
// at creation time but not guaranteed globally unique over long runs.
type Customer struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Orders []OrderLine `json:"orders"`
}

// OrderLine is one menu item on a seat's order. Name and Price are
// snapshots taken when the item is first added; later menu edits do not
// reach back into existing lines or history.
type OrderLine struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Qty        int     `json:"qty"`
}

// Total sums price x qty over the seat's order.
func (cu *Customer) Total() float64 {
	var sum float64
	for _, line := range cu.Orders {
		sum += line.Price * float64(line.Qty)
	}
	return sum
}

// ItemQty returns the ordered quantity for a menu item, or 0 if absent.
func (cu *Customer) ItemQty(menuItemID uint) int {
	for _, line := range cu.Orders {
		if line.MenuItemID == menuItemID {
			return line.Qty
		}
	}
	return 0
}

// AddItem increments the existing line for the item or appends a new
// line with qty 1. Each menu item appears at most once per seat.
func (cu *Customer) AddItem(item MenuItem) {
	for i := range cu.Orders {
		if cu.Orders[i].MenuItemID == item.ID {
			cu.Orders[i].Qty++
			return
		}
	}
	cu.Orders = append(cu.Orders, OrderLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Qty:        1,
	})
}

// DecrementItem lowers the line's quantity by one, dropping the line
// entirely at qty 1 so a zero-qty line is never stored. Returns false
// when no line matches, in which case nothing changed.
func (cu *Customer) DecrementItem(menuItemID uint) bool {
	for i := range cu.Orders {
		if cu.Orders[i].MenuItemID != menuItemID {
			continue
		}
		if cu.Orders[i].Qty > 1 {
			cu.Orders[i].Qty--
		} else {
			cu.Orders = append(cu.Orders[:i], cu.Orders[i+1:]...)
		}
		return true
	}
	return false
}

// RemoveLine deletes the line at index unconditionally. Returns false on
// a stale index.
func (cu *Customer) RemoveLine(index int) bool {
	if index < 0 || index >= len(cu.Orders) {
		return false
	}
	cu.Orders = append(cu.Orders[:index], cu.Orders[index+1:]...)
	return true
}

// ClearOrders empties the seat's order after settlement. The seat itself
// stays, ready for the next round.
func (cu *Customer) ClearOrders() {
	cu.Orders = []OrderLine{}
}
