package constant

// Rule Type, the tag byte of every block in an SRS rule-set section
const (
	Domain        RuleType = 2
	DomainKeyword RuleType = 3
	DomainRegex   RuleType = 4
	DomainFinal   RuleType = 0xFF
)

type RuleType byte

func (rt RuleType) Byte() byte {
	return byte(rt)
}

func (rt RuleType) String() string {
	switch rt {
	case Domain:
		return "Domain"
	case DomainKeyword:
		return "DomainKeyword"
	case DomainRegex:
		return "DomainRegex"
	case DomainFinal:
		return "DomainFinal"
	default:
		return "Unknown"
	}
}

// DefaultRuleSetName is the bucket holding every rule of a source file,
// regardless of its attributes.
const DefaultRuleSetName = "default"

// Rule is one rule collection, written as one SRS file.
type Rule struct {
	Domain        StringSet
	DomainSuffix  StringSet
	DomainKeyword StringSet
	DomainRegex   StringSet
}

func NewRule() *Rule {
	return &Rule{
		Domain:        NewStringSet(),
		DomainSuffix:  NewStringSet(),
		DomainKeyword: NewStringSet(),
		DomainRegex:   NewStringSet(),
	}
}

// Merge adds every entry of other into r.
func (r *Rule) Merge(other *Rule) {
	r.Domain.Merge(other.Domain)
	r.DomainSuffix.Merge(other.DomainSuffix)
	r.DomainKeyword.Merge(other.DomainKeyword)
	r.DomainRegex.Merge(other.DomainRegex)
}

func (r *Rule) Count() int {
	return r.Domain.Len() + r.DomainSuffix.Len() + r.DomainKeyword.Len() + r.DomainRegex.Len()
}

func (r *Rule) IsEmpty() bool {
	return r.Count() == 0
}

// HasDomainMatcher reports whether a domain matcher block must be emitted.
func (r *Rule) HasDomainMatcher() bool {
	return r.Domain.Len() > 0 || r.DomainSuffix.Len() > 0
}
