package form4

import (
	"strings"

	"github.com/beevik/etree"
)

// Step is one element name in a path expression. A local step matches
// the tag's local name regardless of namespace prefix; a non-local step
// only matches unprefixed tags, mirroring how plain XPath behaves on
// documents without namespace declarations.
type Step struct {
	Name  string
	Local bool
}

func (s Step) matches(el *etree.Element) bool {
	if s.Local {
		return el.Tag == s.Name
	}
	return el.Space == "" && el.Tag == s.Name
}

// PathExpr probes for a text value relative to an anchor element. Up
// walks to ancestors before matching, which covers fields such as
// securityTitle that live beside the transaction subtree rather than
// inside it. With Up == 0 the first step searches all descendants of
// the anchor; subsequent steps, and every step of an upward expression,
// match direct children only.
type PathExpr struct {
	Up    int
	Steps []Step
}

// Desc builds a descendant expression over unprefixed tag names.
func Desc(names ...string) PathExpr {
	return PathExpr{Steps: steps(names, false)}
}

// LocalDesc builds a descendant expression matched by local name,
// tolerant of any namespace prefix.
func LocalDesc(names ...string) PathExpr {
	return PathExpr{Steps: steps(names, true)}
}

// Sibling builds an expression that climbs up parent hops and then
// descends through direct children by local name.
func Sibling(up int, names ...string) PathExpr {
	return PathExpr{Up: up, Steps: steps(names, true)}
}

func steps(names []string, local bool) []Step {
	out := make([]Step, len(names))
	for i, n := range names {
		out[i] = Step{Name: n, Local: local}
	}
	return out
}

// Eval returns the trimmed text of the first element the expression
// reaches, or "" when the path cannot be satisfied from this anchor.
func (p PathExpr) Eval(anchor *etree.Element) string {
	node := anchor
	for i := 0; i < p.Up; i++ {
		node = node.Parent()
		if node == nil {
			return ""
		}
	}
	if len(p.Steps) == 0 {
		return ""
	}

	var heads []*etree.Element
	if p.Up > 0 {
		heads = childMatches(node, p.Steps[0])
	} else {
		heads = descendantMatches(node, p.Steps[0])
	}

	for _, head := range heads {
		cur := head
		ok := true
		for _, step := range p.Steps[1:] {
			next := firstChildMatch(cur, step)
			if next == nil {
				ok = false
				break
			}
			cur = next
		}
		if !ok {
			continue
		}
		if text := strings.TrimSpace(cur.Text()); text != "" {
			return text
		}
	}
	return ""
}

// Locate tries candidate expressions in priority order against the
// anchor and returns the first non-empty trimmed match. It returns ""
// when every candidate fails; a missing field is an expected state, not
// an error.
func Locate(anchor *etree.Element, candidates []PathExpr) string {
	if anchor == nil {
		return ""
	}
	for _, c := range candidates {
		if v := c.Eval(anchor); v != "" {
			return v
		}
	}
	return ""
}

func childMatches(el *etree.Element, step Step) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if step.matches(child) {
			out = append(out, child)
		}
	}
	return out
}

func firstChildMatch(el *etree.Element, step Step) *etree.Element {
	for _, child := range el.ChildElements() {
		if step.matches(child) {
			return child
		}
	}
	return nil
}

// descendantMatches walks the subtree below el in document order,
// excluding el itself.
func descendantMatches(el *etree.Element, step Step) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(cur *etree.Element) {
		for _, child := range cur.ChildElements() {
			if step.matches(child) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(el)
	return out
}

// Candidate path sets per semantic field. Order encodes priority: the
// most likely concrete shape first, local-name wildcard last so filings
// with missing or misused namespace declarations still resolve.
var (
	issuerNamePaths = []PathExpr{
		Desc("issuerName"),
		LocalDesc("issuerName"),
	}
	issuerSymbolPaths = []PathExpr{
		Desc("issuerTradingSymbol"),
		LocalDesc("issuerTradingSymbol"),
	}
	issuerCIKPaths = []PathExpr{
		Desc("issuerCik"),
		LocalDesc("issuerCik"),
	}

	ownerNamePaths = []PathExpr{
		Desc("rptOwnerName"),
		Desc("ownerName"),
		LocalDesc("rptOwnerName"),
		LocalDesc("ownerName"),
	}
	ownerCIKPaths = []PathExpr{
		Desc("rptOwnerCik"),
		Desc("ownerCik"),
		LocalDesc("rptOwnerCik"),
	}

	transactionDatePaths = []PathExpr{
		Desc("transactionDate", "value"),
		Desc("transactionDate"),
		LocalDesc("transactionDate", "value"),
		LocalDesc("transactionDate"),
	}
	transactionCodePaths = []PathExpr{
		Desc("transactionCoding", "transactionCode"),
		Desc("transactionCode"),
		LocalDesc("transactionCoding", "transactionCode"),
	}
	sharesPaths = []PathExpr{
		Desc("transactionShares", "value"),
		Desc("transactionAmounts", "transactionShares", "value"),
		LocalDesc("transactionShares", "value"),
	}
	pricePaths = []PathExpr{
		Desc("transactionAmounts", "transactionPricePerShare", "value"),
		Desc("transactionPricePerShare", "value"),
		Desc("pricePerShare", "value"),
		LocalDesc("transactionPricePerShare", "value"),
	}
	ownershipPaths = []PathExpr{
		Desc("directOrIndirectOwnership", "value"),
		Desc("ownershipNature", "directOrIndirectOwnership", "value"),
		LocalDesc("directOrIndirectOwnership", "value"),
	}
	securityTitlePaths = []PathExpr{
		Sibling(1, "securityTitle", "value"),
		Sibling(2, "securityTitle", "value"),
		LocalDesc("securityTitle", "value"),
	}
)

// Container step lists locate the blocks extraction is scoped to. The
// two transaction kinds are probed independently so both tables are
// captured when a filing carries both.
var (
	issuerContainerSteps = []Step{
		{Name: "issuer"},
		{Name: "issuer", Local: true},
	}
	ownerContainerSteps = []Step{
		{Name: "reportingOwner"},
		{Name: "reportingOwnerId"},
		{Name: "reportingOwner", Local: true},
		{Name: "reportingOwnerId", Local: true},
	}
	nonDerivativeContainerSteps = []Step{
		{Name: "nonDerivativeTransaction"},
		{Name: "nonDerivativeTransaction", Local: true},
	}
	derivativeContainerSteps = []Step{
		{Name: "derivativeTransaction"},
		{Name: "derivativeTransaction", Local: true},
	}
)

// firstContainer returns the first descendant matching any step, in
// priority order. Used for blocks that occur once per filing.
func firstContainer(root *etree.Element, candidates []Step) *etree.Element {
	for _, step := range candidates {
		if found := descendantMatches(root, step); len(found) > 0 {
			return found[0]
		}
	}
	return nil
}

// allContainers returns every descendant matched by the first step that
// yields any result. Later steps are fallback dialects, not additive:
// mixing them would double-count containers that match both.
func allContainers(root *etree.Element, candidates []Step) []*etree.Element {
	for _, step := range candidates {
		if found := descendantMatches(root, step); len(found) > 0 {
			return found
		}
	}
	return nil
}
