package scoring

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ajharbinger/receipt-processor/internal/models"
)

// Rule names, in evaluation order
const (
	RuleRetailerAlphanumeric    = "retailer_alphanumeric"
	RuleRoundDollarTotal        = "round_dollar_total"
	RuleQuarterMultipleTotal    = "quarter_multiple_total"
	RuleItemPairs               = "item_pairs"
	RuleItemDescriptionLength   = "item_description_length"
	RuleOddPurchaseDay          = "odd_purchase_day"
	RuleAfternoonPurchaseWindow = "afternoon_purchase_window"
)

const (
	roundDollarPoints     = 50
	quarterMultiplePoints = 25
	pointsPerItemPair     = 5
	oddDayPoints          = 6
	afternoonPoints       = 10

	windowStart = 14 * time.Hour
	windowEnd   = 16 * time.Hour
)

// maxRulePoints caps any single contribution so sums stay within int
const maxRulePoints = math.MaxInt32

var (
	descriptionMultiplier = decimal.New(2, -1) // 0.2
	half                  = decimal.New(5, -1) // 0.5
	quarter               = decimal.New(25, -2)
	oneDollar             = decimal.NewFromInt(1)
	maxPointsDecimal      = decimal.NewFromInt(maxRulePoints)
)

func (e *Engine) retailerAlphanumeric(r *models.Receipt) int {
	if r.Retailer == "" {
		e.logger.Debug("Retailer is empty", "rule", RuleRetailerAlphanumeric, "points", 0)
		return 0
	}

	count := 0
	for _, ch := range r.Retailer {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			count++
		}
	}
	e.logger.Debug("Counted alphanumeric characters in retailer",
		"rule", RuleRetailerAlphanumeric, "retailer", r.Retailer, "points", count)
	return count
}

func (e *Engine) roundDollarTotal(r *models.Receipt) int {
	total := r.Total.StringFixed(2)
	if r.Total.IsPositive() && r.Total.Mod(oneDollar).IsZero() {
		e.logger.Debug("Total has no cents", "rule", RuleRoundDollarTotal, "total", total, "points", roundDollarPoints)
		return roundDollarPoints
	}
	e.logger.Debug("Total is not a round dollar amount", "rule", RuleRoundDollarTotal, "total", total, "points", 0)
	return 0
}

func (e *Engine) quarterMultipleTotal(r *models.Receipt) int {
	total := r.Total.StringFixed(2)
	if !r.Total.IsNegative() && r.Total.Mod(quarter).IsZero() {
		e.logger.Debug("Total is a multiple of 0.25", "rule", RuleQuarterMultipleTotal, "total", total, "points", quarterMultiplePoints)
		return quarterMultiplePoints
	}
	e.logger.Debug("Total is not a multiple of 0.25", "rule", RuleQuarterMultipleTotal, "total", total, "points", 0)
	return 0
}

func (e *Engine) itemPairs(r *models.Receipt) int {
	pairs := len(r.Items) / 2
	points := pairs * pointsPerItemPair
	e.logger.Debug("Counted item pairs", "rule", RuleItemPairs, "pairs", pairs, "points", points)
	return points
}

func (e *Engine) itemDescriptionLength(r *models.Receipt) int {
	total := 0
	for _, item := range r.Items {
		length := utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))
		if length == 0 || length%3 != 0 {
			continue
		}
		if item.Price.IsNegative() {
			continue
		}

		product := item.Price.Mul(descriptionMultiplier)
		points := roundHalfUp(product)
		e.logger.Debug("Item description length is a multiple of 3",
			"rule", RuleItemDescriptionLength,
			"description", item.ShortDescription,
			"product", product.String(),
			"points", points)
		total = addPoints(total, points)
	}
	return total
}

func (e *Engine) oddPurchaseDay(r *models.Receipt) int {
	if r.PurchaseDate.IsZero() {
		return 0
	}
	if r.PurchaseDate.Day()%2 != 0 {
		e.logger.Debug("Purchase day is odd", "rule", RuleOddPurchaseDay, "day", r.PurchaseDate.Day(), "points", oddDayPoints)
		return oddDayPoints
	}
	return 0
}

func (e *Engine) afternoonPurchaseWindow(r *models.Receipt) int {
	if r.PurchaseTime > windowStart && r.PurchaseTime < windowEnd {
		e.logger.Debug("Purchase time is between 14:00 and 16:00", "rule", RuleAfternoonPurchaseWindow, "points", afternoonPoints)
		return afternoonPoints
	}
	return 0
}

// roundHalfUp rounds a non-negative value to the nearest integer, ties
// upward, saturating at maxRulePoints.
func roundHalfUp(d decimal.Decimal) int {
	rounded := d.Add(half).Floor()
	if rounded.IsNegative() {
		return 0
	}
	if rounded.GreaterThan(maxPointsDecimal) {
		return maxRulePoints
	}
	return int(rounded.IntPart())
}

// addPoints adds two non-negative contributions, saturating at maxRulePoints
func addPoints(a, b int) int {
	if b > maxRulePoints-a {
		return maxRulePoints
	}
	return a + b
}
