package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Wire layouts for receipt dates and times
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	TimeLayoutSeconds = "15:04:05"
)

var moneyPattern = regexp.MustCompile(`^\d+\.\d{2}$`)

// Receipt is a purchase receipt as seen by the scoring engine
type Receipt struct {
	Retailer     string
	PurchaseDate time.Time     // calendar date, UTC midnight
	PurchaseTime time.Duration // offset from midnight, no zone
	Items        []Item
	Total        decimal.Decimal
}

// Item is a single line on a receipt
type Item struct {
	ShortDescription string
	Price            decimal.Decimal
}

// ReceiptPayload is the JSON shape accepted on the wire
type ReceiptPayload struct {
	Retailer     string        `json:"retailer"`
	PurchaseDate string        `json:"purchaseDate" binding:"required"`
	PurchaseTime string        `json:"purchaseTime" binding:"required"`
	Items        []ItemPayload `json:"items" binding:"dive"`
	Total        string        `json:"total" binding:"required"`
}

// ItemPayload is the JSON shape of a receipt item
type ItemPayload struct {
	ShortDescription string `json:"shortDescription" binding:"required"`
	Price            string `json:"price" binding:"required"`
}

// ToReceipt converts the wire payload into a Receipt, rejecting values that
// are not valid dates, times or two-digit decimal amounts.
func (p *ReceiptPayload) ToReceipt() (*Receipt, error) {
	date, err := ParseDate(p.PurchaseDate)
	if err != nil {
		return nil, err
	}

	clock, err := ParseTimeOfDay(p.PurchaseTime)
	if err != nil {
		return nil, err
	}

	total, err := ParseMoney(p.Total)
	if err != nil {
		return nil, fmt.Errorf("total: %w", err)
	}

	items := make([]Item, 0, len(p.Items))
	for i, it := range p.Items {
		price, err := ParseMoney(it.Price)
		if err != nil {
			return nil, fmt.Errorf("items[%d].price: %w", i, err)
		}
		items = append(items, Item{ShortDescription: it.ShortDescription, Price: price})
	}

	return &Receipt{
		Retailer:     p.Retailer,
		PurchaseDate: date,
		PurchaseTime: clock,
		Items:        items,
		Total:        total,
	}, nil
}

// ParseMoney parses a non-negative amount with exactly two fractional digits
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !moneyPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("invalid amount %q: expected format 0.00", s)
	}
	return decimal.NewFromString(s)
}

// ParseDate parses an ISO-8601 calendar date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid purchaseDate %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// ParseTimeOfDay parses a 24-hour HH:MM or HH:MM:SS time into an offset from midnight
func ParseTimeOfDay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	layout := TimeLayout
	if strings.Count(s, ":") == 2 {
		layout = TimeLayoutSeconds
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid purchaseTime %q: expected HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ClockTime builds a time-of-day offset, mostly useful in tests and tools
func ClockTime(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}
