// Package matcher evaluates a rule collection against host names the way an
// SRS consumer does: domain set first, then keywords, then regexps.
package matcher

import (
	"fmt"
	"strings"

	"github.com/skymkmk/domain-list-to-srs/component/trie"
	C "github.com/skymkmk/domain-list-to-srs/constant"

	"github.com/dlclark/regexp2"
)

type Matcher struct {
	domainSet *trie.DomainSet
	keywords  []string
	regexps   []*regexp2.Regexp
}

func New(rule *C.Rule) (*Matcher, error) {
	m := &Matcher{
		domainSet: trie.NewDomainSet(rule.Domain.Sorted(), rule.DomainSuffix.Sorted()),
		keywords:  rule.DomainKeyword.Sorted(),
	}
	for _, expr := range rule.DomainRegex.Sorted() {
		re, err := regexp2.Compile(expr, regexp2.RE2)
		if err != nil {
			return nil, fmt.Errorf("invalid regexp %q: %w", expr, err)
		}
		m.regexps = append(m.regexps, re)
	}
	return m, nil
}

// Match reports the first block accepting host and the rule in it that
// matched. The domain set reports no rule payload.
func (m *Matcher) Match(host string) (ruleType C.RuleType, payload string, ok bool) {
	if m.domainSet.Match(host) {
		return C.Domain, "", true
	}
	for _, keyword := range m.keywords {
		if strings.Contains(host, keyword) {
			return C.DomainKeyword, keyword, true
		}
	}
	for _, re := range m.regexps {
		if match, _ := re.MatchString(host); match {
			return C.DomainRegex, re.String(), true
		}
	}
	return 0, "", false
}
