package model

// Intent is what the user is asking for.
type Intent string

const (
	// IntentHSOnly asks for the classification code only.
	IntentHSOnly Intent = "hs_only"
	// IntentPriceOnly asks for the reference price.
	IntentPriceOnly Intent = "price_only"
	// IntentDuty asks for the duty owed.
	IntentDuty Intent = "duty"
	// IntentGeneral matched no specific keyword.
	IntentGeneral Intent = "general"
)

// ValueSource explains where a resolved value came from.
type ValueSource string

const (
	// ValueExplicit is a literal amount stated next to a currency marker.
	ValueExplicit ValueSource = "explicit_value"
	// ValueComputedFromQuantity is quantity times the catalog price.
	ValueComputedFromQuantity ValueSource = "computed_from_quantity"
	// ValueDefaultUnitPrice is the catalog price for an implicit quantity of one.
	ValueDefaultUnitPrice ValueSource = "default_unit_price"
)

// ResolvedQuery is the per-request record of everything the engine understood.
// It is created and discarded per call and never persisted.
type ResolvedQuery struct {
	Quantity      *float64    `json:"quantity,omitempty"`
	ExplicitValue *float64    `json:"explicit_value,omitempty"`
	Fee           *float64    `json:"fee,omitempty"`
	Rate          *float64    `json:"rate,omitempty"`
	Query         string      `json:"query"`
	Product       string      `json:"product,omitempty"`
	HSCode        string      `json:"hs_code,omitempty"`
	CodeSource    CodeSource  `json:"code_source,omitempty"`
	Intent        Intent      `json:"intent"`
	Currency      string      `json:"currency"`
	Unit          string      `json:"unit,omitempty"`
	ValueSource   ValueSource `json:"value_source,omitempty"`
	Value         float64     `json:"value"`
	ValueKnown    bool        `json:"value_known"`
}

// CodeSource records which lookup produced a classification code.
type CodeSource string

const (
	// CodeFromQuery is a bare 8-digit code typed by the user.
	CodeFromQuery CodeSource = "query"
	// CodeFromTable is a fuzzy name match in the classification table.
	CodeFromTable CodeSource = "classification_table"
	// CodeFromNotes is a code embedded in the catalog item's notes.
	CodeFromNotes CodeSource = "notes"
)
