package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "23.82", want: "23.82"},
		{input: "0.00", want: "0"},
		{input: " 81.25 ", want: "81.25"},
		{input: "1.5", wantErr: true},
		{input: "1.505", wantErr: true},
		{input: "-1.00", wantErr: true},
		{input: "12", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMoney(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	d, err := ParseTimeOfDay("14:01")
	require.NoError(t, err)
	assert.Equal(t, 14*time.Hour+time.Minute, d)

	d, err = ParseTimeOfDay("14:00:30")
	require.NoError(t, err)
	assert.Equal(t, 14*time.Hour+30*time.Second, d)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("2pm")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-07-30")
	require.NoError(t, err)
	assert.Equal(t, 30, d.Day())
	assert.Equal(t, time.July, d.Month())

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)

	_, err = ParseDate("07/30/2024")
	assert.Error(t, err)
}

func TestReceiptPayload_ToReceipt(t *testing.T) {
	payload := &ReceiptPayload{
		Retailer:     "Target",
		PurchaseDate: "2022-01-01",
		PurchaseTime: "13:01",
		Items: []ItemPayload{
			{ShortDescription: "Mountain Dew 12PK", Price: "6.49"},
			{ShortDescription: "Emils Cheese Pizza", Price: "12.25"},
		},
		Total: "18.74",
	}

	receipt, err := payload.ToReceipt()
	require.NoError(t, err)

	assert.Equal(t, "Target", receipt.Retailer)
	assert.Equal(t, 1, receipt.PurchaseDate.Day())
	assert.Equal(t, ClockTime(13, 1), receipt.PurchaseTime)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "12.25", receipt.Items[1].Price.StringFixed(2))
	assert.Equal(t, "18.74", receipt.Total.StringFixed(2))
}

func TestReceiptPayload_ToReceipt_Errors(t *testing.T) {
	base := func() *ReceiptPayload {
		return &ReceiptPayload{
			PurchaseDate: "2022-01-01",
			PurchaseTime: "13:01",
			Items:        []ItemPayload{{ShortDescription: "Gum", Price: "1.00"}},
			Total:        "1.00",
		}
	}

	p := base()
	p.Total = "1.0"
	_, err := p.ToReceipt()
	assert.ErrorContains(t, err, "total")

	p = base()
	p.Items[0].Price = "free"
	_, err = p.ToReceipt()
	assert.ErrorContains(t, err, "items[0].price")

	p = base()
	p.PurchaseDate = "yesterday"
	_, err = p.ToReceipt()
	assert.ErrorContains(t, err, "purchaseDate")

	p = base()
	p.PurchaseTime = "noon"
	_, err = p.ToReceipt()
	assert.ErrorContains(t, err, "purchaseTime")
}
