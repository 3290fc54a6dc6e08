// Package taxes provides a flat withholding-rate lookup used by the
// dashboard to show take-home commission estimates. Rates are flat
// supplemental-wage percentages, not a full bracket calculation.
package taxes

import "strings"

// FederalRate is the flat federal supplemental-wage withholding rate.
const FederalRate = 0.22

// TaxRate is the combined withholding rate for one state.
type TaxRate struct {
	State        string  `json:"state"`
	StateRate    float64 `json:"stateRate"`
	FederalRate  float64 `json:"federalRate"`
	CombinedRate float64 `json:"combinedRate"`
}

// stateRates holds flat state supplemental withholding rates by
// two-letter code. States absent from the table withhold nothing
// (either no income tax or no flat supplemental rate).
var stateRates = map[string]float64{
	"AL": 0.0500,
	"AR": 0.0440,
	"AZ": 0.0250,
	"CA": 0.0660,
	"CO": 0.0440,
	"CT": 0.0699,
	"GA": 0.0539,
	"IA": 0.0380,
	"ID": 0.0580,
	"IL": 0.0495,
	"IN": 0.0305,
	"KS": 0.0500,
	"KY": 0.0400,
	"LA": 0.0300,
	"MA": 0.0500,
	"MD": 0.0575,
	"ME": 0.0715,
	"MI": 0.0425,
	"MN": 0.0625,
	"MO": 0.0480,
	"MS": 0.0440,
	"MT": 0.0590,
	"NC": 0.0450,
	"ND": 0.0195,
	"NE": 0.0500,
	"NJ": 0.0637,
	"NM": 0.0590,
	"NY": 0.0962,
	"OH": 0.0350,
	"OK": 0.0475,
	"OR": 0.0800,
	"PA": 0.0307,
	"RI": 0.0599,
	"SC": 0.0640,
	"UT": 0.0465,
	"VA": 0.0575,
	"VT": 0.0660,
	"WI": 0.0590,
	"WV": 0.0510,
}

// Rate returns the withholding rates for a state code. The second
// return reports whether the state was found in the table; unknown
// states still get a valid federal-only rate.
func Rate(state string) (TaxRate, bool) {
	code := strings.ToUpper(strings.TrimSpace(state))
	stateRate, ok := stateRates[code]
	return TaxRate{
		State:        code,
		StateRate:    stateRate,
		FederalRate:  FederalRate,
		CombinedRate: stateRate + FederalRate,
	}, ok
}

// Withholding returns the estimated amount withheld from a gross
// commission payout for a rep in the given state.
func Withholding(gross float64, state string) float64 {
	if gross <= 0 {
		return 0
	}
	rate, _ := Rate(state)
	return gross * rate.CombinedRate
}
