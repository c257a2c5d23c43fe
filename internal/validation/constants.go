package validation

const (
	MinSubmittedYear = 2000
	MinPrincipalAge  = 18
	MaxPrincipalAge  = 120
	MaxNameLength    = 100
	MaxNotesLength   = 5000
)

// usStates includes DC and the inhabited territories.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true,
	"DE": true, "DC": true, "FL": true, "GA": true, "HI": true, "ID": true, "IL": true,
	"IN": true, "IA": true, "KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true, "MT": true, "NE": true,
	"NV": true, "NH": true, "NJ": true, "NM": true, "NY": true, "NC": true, "ND": true,
	"OH": true, "OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true,
	"TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "PR": true, "VI": true, "GU": true, "AS": true, "MP": true,
}

var disposableDomains = map[string]bool{
	"tempmail.com":      true,
	"throwaway.email":   true,
	"guerrillamail.com": true,
	"mailinator.com":    true,
	"10minutemail.com":  true,
}

// typoSuffixes are common misspellings of .com
var typoSuffixes = []string{".con", ".cm", ".vom"}

var EntityTypes = []string{
	"LLC", "Corporation", "S-Corp", "C-Corp", "Partnership",
	"Sole Proprietorship", "LLP", "Non-Profit", "Other",
}

// placeholderNames are rejected as contact names.
var placeholderNames = map[string]bool{
	"test": true, "testing": true, "asdf": true, "qwerty": true, "xxx": true, "na": true, "n/a": true,
}
