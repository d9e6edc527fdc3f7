package style

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/motif/core"
	"golang.org/x/net/html"
)

// Stylesheet is a parsed CSS stylesheet with compiled selectors.
type Stylesheet struct {
	rules []*rule
}

type rule struct {
	source   string
	selector cascadia.Selector
	spec     specificity
	decls    []*css.Declaration
}

// ParseStylesheet parses CSS text. At-rules are skipped. A selector which
// cannot be compiled makes the whole stylesheet invalid.
func ParseStylesheet(text string) (*Stylesheet, error) {
	parsed, err := parser.Parse(text)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse stylesheet")
	}
	sheet := &Stylesheet{}
	for _, r := range parsed.Rules {
		if r.Kind != css.QualifiedRule {
			tracer().Infof("skipping at-rule %s", r.Name)
			continue
		}
		for _, s := range r.Selectors {
			s = strings.TrimSpace(s)
			sel, err := cascadia.Compile(s)
			if err != nil {
				return nil, core.WrapError(err, core.EINVALID, "illegal selector '%s'", s)
			}
			sheet.rules = append(sheet.rules, &rule{
				source:   s,
				selector: sel,
				spec:     specificityOf(s),
				decls:    r.Declarations,
			})
		}
	}
	tracer().Debugf("stylesheet with %d rules", len(sheet.rules))
	return sheet, nil
}

// Len returns the number of rules, counting each selector of a selector
// group as a rule of its own.
func (sheet *Stylesheet) Len() int {
	if sheet == nil {
		return 0
	}
	return len(sheet.rules)
}

// Selectors returns the selectors of all rules in source order.
func (sheet *Stylesheet) Selectors() []string {
	sels := make([]string, len(sheet.rules))
	for i, r := range sheet.rules {
		sels[i] = r.source
	}
	return sels
}

func (sheet *Stylesheet) matching(n *html.Node) []*rule {
	var rules []*rule
	for _, r := range sheet.rules {
		if r.selector.Match(n) {
			rules = append(rules, r)
		}
	}
	return rules
}

// --- Specificity -----------------------------------------------------------

// specificity counts ids, classes (including attributes and pseudo-classes)
// and element names of a selector.
type specificity [3]int

func (s specificity) less(o specificity) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

var (
	specIDs      = regexp.MustCompile(`#[-_a-zA-Z0-9]+`)
	specAttrs    = regexp.MustCompile(`\[[^\]]*\]`)
	specClasses  = regexp.MustCompile(`\.[-_a-zA-Z0-9]+`)
	specPseudo   = regexp.MustCompile(`::?[-_a-zA-Z0-9]+(\([^)]*\))?`)
	specElements = regexp.MustCompile(`(^|[\s>+~])[a-zA-Z][-_a-zA-Z0-9]*`)
)

func specificityOf(sel string) specificity {
	var spec specificity
	sel = specAttrs.ReplaceAllStringFunc(sel, func(string) string { spec[1]++; return "" })
	sel = specPseudo.ReplaceAllStringFunc(sel, func(p string) string {
		if strings.HasPrefix(p, "::") {
			spec[2]++
		} else {
			spec[1]++
		}
		return ""
	})
	spec[0] = len(specIDs.FindAllString(sel, -1))
	sel = specIDs.ReplaceAllString(sel, "")
	spec[1] += len(specClasses.FindAllString(sel, -1))
	sel = specClasses.ReplaceAllString(sel, "")
	spec[2] += len(specElements.FindAllString(sel, -1))
	return spec
}
