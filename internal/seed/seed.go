// Package seed generates realistic IR swap trades for the admin seed
// surface. Test and demo tooling only; nothing in the steady-state API
// calls this.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/kestrelfin/tradestore/internal/document"
	"github.com/kestrelfin/tradestore/internal/template"
)

var (
	notionals      = []float64{1000, 5000, 10000, 25000, 50000, 100000}
	counterparties = []string{"02519916", "02519917", "02519918", "02519919", "02519920"}
	books          = []string{"MEWEST01HS", "MEWEST02HS", "MEWEST03HS", "USEAST01HS", "USEAST02HS"}
	priceMakers    = []string{"kbagci", "vmenon", "nseeley"}
)

const dateLayout = "2006-01-02"

// IRSwap builds one randomized IR swap trade. The index only feeds the
// human-readable label and comment.
func IRSwap(index int) document.Document {
	notional := notionals[rand.Intn(len(notionals))]
	fixedRate := round2(2.5 + rand.Float64()*2.5)
	margin := round2(-0.5 + rand.Float64())
	numPeriods := 1 + rand.Intn(6)

	start := time.Now().UTC().AddDate(0, 0, rand.Intn(31))
	end := start.AddDate(0, 0, 30*numPeriods)

	tradeID := template.GenerateTradeID("ir-swap")

	fixedSchedule := make([]any, 0, numPeriods)
	floatingSchedule := make([]any, 0, numPeriods)
	for p := 0; p < numPeriods; p++ {
		periodStart := start.AddDate(0, 0, 30*p)
		periodEnd := start.AddDate(0, 0, 30*(p+1))
		// T+2 settlement.
		paymentDate := periodEnd.AddDate(0, 0, 2)

		fixedSchedule = append(fixedSchedule, map[string]any{
			"periodIndex": p,
			"startDate":   periodStart.Format(dateLayout),
			"endDate":     periodEnd.Format(dateLayout),
			"paymentDate": paymentDate.Format(dateLayout),
			"rate":        fixedRate,
			"notional":    -notional,
			"interest":    round2(-notional * fixedRate / 100 * 30 / 360),
		})
		floatingSchedule = append(floatingSchedule, map[string]any{
			"periodIndex": p,
			"startDate":   periodStart.Format(dateLayout),
			"endDate":     periodEnd.Format(dateLayout),
			"ratesetDate": periodEnd.Format(dateLayout),
			"paymentDate": paymentDate.Format(dateLayout),
			"notional":    notional,
			"margin":      margin,
			"index":       "SOFR",
			"tenor":       "1D",
		})
	}

	return document.Document{
		"id": tradeID,
		"data": map[string]any{
			"general": map[string]any{
				"tradeId":   tradeID,
				"tradeType": "InterestRateSwap",
				"label":     fmt.Sprintf("IR Swap %d", index+1),
				"transactionRoles": map[string]any{
					"marketer":               nil,
					"transactionOriginator":  nil,
					"priceMaker":             priceMakers[rand.Intn(len(priceMakers))],
					"transactionAcceptor":    nil,
					"parameterGrantor":       nil,
				},
			},
			"common": map[string]any{
				"book":         books[rand.Intn(len(books))],
				"tradeDate":    start.Format(dateLayout),
				"counterparty": counterparties[rand.Intn(len(counterparties))],
				"inputDate":    start.Format(dateLayout),
				"comment":      fmt.Sprintf("Auto-generated IR swap trade %d with %d monthly periods", index+1, numPeriods),
				"stp":          "No",
				"ddeEligible":  "No",
				"events":       []any{},
				"fees":         []any{},
			},
			"swapDetails": map[string]any{
				"underlying":        "USD",
				"settlementType":    "physical",
				"swapType":          "irsOis",
				"isCleared":         false,
				"principalExchange": "firstLastLegs",
			},
			"swapLegs": []any{
				map[string]any{
					"legIndex":  0,
					"direction": "pay",
					"currency":  "USD",
					"rateType":  "fixed",
					"rate":      fixedRate,
					"notional":  -notional,
					"startDate": start.Format(dateLayout),
					"endDate":   end.Format(dateLayout),
					"schedule":  fixedSchedule,
				},
				map[string]any{
					"legIndex":  1,
					"direction": "receive",
					"currency":  "USD",
					"rateType":  "floating",
					"index":     "SOFR",
					"tenor":     "1D",
					"margin":    margin,
					"notional":  notional,
					"startDate": start.Format(dateLayout),
					"endDate":   end.Format(dateLayout),
					"schedule":  floatingSchedule,
				},
			},
		},
	}
}

// IRSwaps builds count randomized IR swap trades.
func IRSwaps(count int) []document.Document {
	out := make([]document.Document, count)
	for i := range out {
		out[i] = IRSwap(i)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
