package report

// Report kinds, one per calculator tool.
const (
	KindBiogas         = "biogas"
	KindNutrientDosing = "nutrient-dosing"
)

// rowSpec is one declarative (label, value) row of a report table. Numeric
// rows carry a fixed precision and a literal unit suffix; text rows render
// the raw string. unitKey and labelKey pull the unit or a label qualifier
// from a sibling value (the fuel rows need both).
type rowSpec struct {
	label    string
	key      string
	text     bool
	decimals int32
	unit     string
	unitKey  string
	labelKey string
}

// resultGroup is one logical group of computed values, rendered as its own
// heading plus table.
type resultGroup struct {
	title string
	rows  []rowSpec
}

// template fixes the full section layout for one report kind. Each calculator
// has a fixed schema of inputs and outputs that must appear in a stable order
// for the engineers reviewing the proposal, so the rows are literal lists, not
// a generic key dump.
type template struct {
	title    string
	header   string
	filename string
	inputs   []rowSpec
	groups   []resultGroup
}

var templates = map[string]template{
	KindBiogas: {
		title:    "Biogas Generation Report",
		header:   "EcoTreat Environmental Engineering — Proposal Toolkit",
		filename: "Biogas_Generation_Report.pdf",
		inputs: []rowSpec{
			{label: "Effluent Flow", key: "flow", decimals: 1, unit: "m³/day"},
			{label: "sCOD Concentration", key: "scod", decimals: 0, unit: "mg/L"},
			{label: "Removal Efficiency", key: "efficiency", decimals: 0, unit: "%"},
			{label: "Fuel Replaced", key: "fuelType", text: true},
		},
		groups: []resultGroup{
			{
				title: "Calculated Results",
				rows: []rowSpec{
					{label: "Biogas Generation", key: "biogasGen", decimals: 1, unit: "m³/day"},
					{label: "sCOD Removed", key: "removedKgDay", decimals: 0, unit: "kg/day"},
					{label: "Thermal Energy", key: "totalKcal", decimals: 0, unit: "kcal/day"},
					{label: "Fuel Savings", key: "fuelSavings", decimals: 1, unitKey: "fuelUnit", labelKey: "fuelName"},
				},
			},
		},
	},
	KindNutrientDosing: {
		title:    "Nutrient Dosing Report",
		header:   "EcoTreat Environmental Engineering — Proposal Toolkit",
		filename: "Nutrient_Dosing_Report.pdf",
		inputs: []rowSpec{
			{label: "Effluent Flow", key: "flow", decimals: 1, unit: "m³/day"},
			{label: "COD Concentration", key: "cod", decimals: 0, unit: "mg/L"},
			{label: "Available Nitrogen", key: "nitrogen", decimals: 1, unit: "mg/L"},
			{label: "Available Phosphorus", key: "phosphorus", decimals: 1, unit: "mg/L"},
		},
		groups: []resultGroup{
			{
				title: "Dosing Option 1 — Urea + DAP",
				rows: []rowSpec{
					{label: "Urea Dose", key: "ureaKgDay", decimals: 1, unit: "kg/day"},
					{label: "DAP Dose", key: "dapKgDay", decimals: 1, unit: "kg/day"},
				},
			},
			{
				title: "Dosing Option 2 — Ammonium Chloride + DAP",
				rows: []rowSpec{
					{label: "Ammonium Chloride Dose", key: "aclKgDay", decimals: 1, unit: "kg/day"},
					{label: "DAP Dose", key: "dapAltKgDay", decimals: 1, unit: "kg/day"},
				},
			},
		},
	},
}

// Filename returns the fixed download filename for a kind. It is intentionally
// not content-addressed: every export is a discrete user-initiated download.
func Filename(kind string) (string, bool) {
	tpl, ok := templates[kind]
	if !ok {
		return "", false
	}
	return tpl.filename, true
}
