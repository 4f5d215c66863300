// Package dlc parses rule files in the v2fly domain-list-community format.
package dlc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skymkmk/domain-list-to-srs/common/collections"
	C "github.com/skymkmk/domain-list-to-srs/constant"
	"github.com/skymkmk/domain-list-to-srs/log"

	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var ErrIncludeCycle = errors.New("include cycle")

const maxLineSize = 1 << 20

// RuleSets maps a rule-set name to its rules: C.DefaultRuleSetName first,
// then one entry per attribute in order of first appearance. A file without
// any rule yields an empty map.
type RuleSets = orderedmap.OrderedMap[string, *C.Rule]

type parser struct {
	visiting *collections.Stack[string]
	parsed   map[string]*RuleSets
}

// ParseFile parses path and every file it includes. An included file is
// parsed once per call even if several files include it.
func ParseFile(path string) (*RuleSets, error) {
	p := &parser{
		visiting: collections.NewStack[string](),
		parsed:   map[string]*RuleSets{},
	}
	return p.parseFile(path)
}

// Parse parses r. Includes are resolved against dir.
func Parse(r io.Reader, dir string) (*RuleSets, error) {
	p := &parser{
		visiting: collections.NewStack[string](),
		parsed:   map[string]*RuleSets{},
	}
	return p.parse(r, dir, "<input>")
}

func (p *parser) parseFile(path string) (*RuleSets, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if p.visiting.Contains(path) {
		chain := append(p.visiting.Values(), path)
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, strings.Join(chain, " -> "))
	}
	if rules, ok := p.parsed[path]; ok {
		return rules, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p.visiting.Push(path)
	rules, err := p.parse(f, filepath.Dir(path), path)
	p.visiting.Pop()
	if err != nil {
		return nil, err
	}
	p.parsed[path] = rules
	return rules, nil
}

func (p *parser) parse(r io.Reader, dir, name string) (*RuleSets, error) {
	rules := orderedmap.New[string, *C.Rule]()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		identifier, content, attributes := splitLine(scanner.Text())
		if content == "" {
			continue
		}

		var field func(rule *C.Rule) C.StringSet
		switch identifier {
		case "include":
			target := content
			if !filepath.IsAbs(target) {
				target = filepath.Join(dir, target)
			}
			included, err := p.parseFile(target)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			for pair := included.Oldest(); pair != nil; pair = pair.Next() {
				bucket(rules, pair.Key).Merge(pair.Value)
			}
			continue
		case "domain":
			field = func(rule *C.Rule) C.StringSet { return rule.DomainSuffix }
		case "keyword":
			field = func(rule *C.Rule) C.StringSet { return rule.DomainKeyword }
		case "regexp":
			field = func(rule *C.Rule) C.StringSet { return rule.DomainRegex }
		case "full":
			field = func(rule *C.Rule) C.StringSet { return rule.Domain }
		default:
			log.Warnln("%s:%d: unknown identifier %s, ignore it", name, lineNo, identifier)
			continue
		}

		field(bucket(rules, C.DefaultRuleSetName)).Insert(content)
		for _, attribute := range attributes {
			field(bucket(rules, attribute)).Insert(content)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rules, nil
}

func bucket(rules *RuleSets, name string) *C.Rule {
	rule, ok := rules.Get(name)
	if !ok {
		rule = C.NewRule()
		rules.Set(name, rule)
	}
	return rule
}

// splitLine splits "type:value @attr1 @attr2 # comment" into its parts.
// A line without a type prefix is a domain rule; an empty prefix before
// the colon is kept empty.
func splitLine(line string) (identifier, content string, attributes []string) {
	if pos := strings.IndexByte(line, '#'); pos >= 0 {
		line = line[:pos]
	}
	line = strings.TrimSpace(line)

	identifier = "domain"
	if pos := strings.IndexByte(line, ':'); pos >= 0 {
		identifier = strings.TrimSpace(line[:pos])
		line = line[pos+1:]
	}

	content = line
	if pos := strings.IndexByte(line, '@'); pos >= 0 {
		content = line[:pos]
		attributes = lo.Uniq(lo.FilterMap(strings.Split(line[pos+1:], "@"), func(attr string, _ int) (string, bool) {
			attr = strings.TrimSpace(attr)
			return attr, attr != ""
		}))
	}
	content = strings.TrimSpace(content)
	return
}
