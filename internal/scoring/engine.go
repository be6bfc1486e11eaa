package scoring

import (
	"time"

	"github.com/ajharbinger/receipt-processor/internal/logger"
	"github.com/ajharbinger/receipt-processor/internal/models"
)

// Rule is a single, independent scoring rule.
// Apply must be pure and return a non-negative contribution.
type Rule struct {
	Name        string
	Description string
	Apply       func(r *models.Receipt) int
}

// ScoreResult represents the result of scoring a receipt
type ScoreResult struct {
	Points    int           `json:"points"`
	Breakdown []ScoreDetail `json:"breakdown"`
	ScoredAt  time.Time     `json:"scored_at"`
}

// ScoreDetail provides detailed information about a scoring component
type ScoreDetail struct {
	Rule        string `json:"rule"`
	Points      int    `json:"points"`
	Triggered   bool   `json:"triggered"`
	Description string `json:"description"`
}

// Engine applies the receipt rules in a fixed order and sums them.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rules  []Rule
	logger logger.Logger
}

// NewEngine creates a new scoring engine instance
func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	e := &Engine{logger: log}
	e.rules = []Rule{
		{Name: RuleRetailerAlphanumeric, Description: "One point per alphanumeric character in the retailer name", Apply: e.retailerAlphanumeric},
		{Name: RuleRoundDollarTotal, Description: "50 points if the total is a round dollar amount with no cents", Apply: e.roundDollarTotal},
		{Name: RuleQuarterMultipleTotal, Description: "25 points if the total is a multiple of 0.25", Apply: e.quarterMultipleTotal},
		{Name: RuleItemPairs, Description: "5 points for every two items on the receipt", Apply: e.itemPairs},
		{Name: RuleItemDescriptionLength, Description: "Price x 0.2, rounded half-up, for items whose trimmed description length is a multiple of 3", Apply: e.itemDescriptionLength},
		{Name: RuleOddPurchaseDay, Description: "6 points if the day in the purchase date is odd", Apply: e.oddPurchaseDay},
		{Name: RuleAfternoonPurchaseWindow, Description: "10 points if the purchase time is after 14:00 and before 16:00", Apply: e.afternoonPurchaseWindow},
	}
	return e
}

// Rules returns the rules in evaluation order
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Score evaluates every rule against the receipt. All rules run; none short-circuit.
func (e *Engine) Score(receipt *models.Receipt) *ScoreResult {
	result := &ScoreResult{
		Breakdown: make([]ScoreDetail, 0, len(e.rules)),
		ScoredAt:  time.Now(),
	}

	if receipt == nil {
		e.logger.Warn("Scoring a nil receipt, every rule yields 0 points")
		for _, rule := range e.rules {
			result.Breakdown = append(result.Breakdown, ScoreDetail{Rule: rule.Name, Description: rule.Description})
		}
		return result
	}

	for _, rule := range e.rules {
		points := rule.Apply(receipt)
		if points < 0 {
			points = 0
		} else if points > maxRulePoints {
			points = maxRulePoints
		}
		result.Breakdown = append(result.Breakdown, ScoreDetail{
			Rule:        rule.Name,
			Points:      points,
			Triggered:   points > 0,
			Description: rule.Description,
		})
		result.Points = addPoints(result.Points, points)
	}

	e.logger.Debug("Receipt scored", "retailer", receipt.Retailer, "points", result.Points)
	return result
}

// Points returns only the total score for the receipt
func (e *Engine) Points(receipt *models.Receipt) int {
	return e.Score(receipt).Points
}
