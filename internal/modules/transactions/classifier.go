package transactions

import "strings"

// KeywordClassifier is the default categorization strategy: case-insensitive
// substring rules over the merchant name, first match wins.
type KeywordClassifier struct {
	rules []keywordRule
}

type keywordRule struct {
	keywords []string
	category string
}

// NewKeywordClassifier builds the default rule set.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{rules: []keywordRule{
		{[]string{"supermarket", "grocery", "restaurant", "cafe", "coffee", "bakery", "food", "talabat", "deliveroo"}, "FOOD"},
		{[]string{"uber", "careem", "taxi", "petrol", "fuel", "parking", "garage"}, "TRANSPORT"},
		{[]string{"electricity", "water", "ewa", "internet", "telecom", "batelco", "zain", "stc"}, "UTILITIES"},
		{[]string{"pharmacy", "hospital", "clinic", "dental", "medical"}, "HEALTHCARE"},
		{[]string{"school", "university", "tuition", "course", "bookstore"}, "EDUCATION"},
		{[]string{"netflix", "spotify", "subscription", "prime", "icloud", "shahid"}, "SUBSCRIPTIONS"},
		{[]string{"rent", "landlord", "property"}, "HOUSING"},
		{[]string{"insurance", "takaful"}, "INSURANCE"},
	}}
}

// Classify returns the first matching category, or OTHER.
func (c *KeywordClassifier) Classify(merchantName string) string {
	name := strings.ToLower(merchantName)
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return "OTHER"
}
