package models

// LineItem is one purchased item for tax calculation. Items are collected as
// an ordered slice; an item's slice position becomes its wire-format id.
type LineItem struct {
	UnitPrice   Money
	Quantity    int
	ProductCode string
	ProductName string
	SKU         string
}
