package expertise

import "strings"

const (
	DomainCriminal             = "criminal"
	DomainCivil                = "civil"
	DomainIntellectualProperty = "intellectual_property"
	DomainTax                  = "tax"
)

type domainKeywords struct {
	domain   string
	keywords []string
}

// Iteration order is the tie-break: the first domain with a match wins.
var domainTable = []domainKeywords{
	{DomainCriminal, []string{"crime", "criminal", "theft", "assault", "murder", "felony", "misdemeanor", "arrest", "prosecution"}},
	{DomainCivil, []string{"contract", "tort", "negligence", "lawsuit", "civil", "damages", "breach", "liability"}},
	{DomainIntellectualProperty, []string{"patent", "trademark", "copyright", "trade secret", "infringement", "licensing"}},
	{DomainTax, []string{"tax", "irs", "gst", "vat", "deduction", "assessment", "audit"}},
}

// Domains lists the known domains in detection order.
func Domains() []string {
	out := make([]string, 0, len(domainTable))
	for _, d := range domainTable {
		out = append(out, d.domain)
	}
	return out
}

// DetectDomain returns the first domain whose keyword occurs in text, or ""
// when none does.
func DetectDomain(text string) string {
	lower := strings.ToLower(text)
	for _, d := range domainTable {
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				return d.domain
			}
		}
	}
	return ""
}
