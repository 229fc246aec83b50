package search

import "strings"

// pattern is a parsed exact or wildcard query.
//
//	*text*  containment
//	*text   suffix
//	text*   prefix
//	text    equality
type pattern struct {
	body     string
	wildcard bool
	match    func(term string) bool
}

func parsePattern(query string) pattern {
	q := strings.ToLower(strings.TrimSpace(query))
	lead := strings.HasPrefix(q, "*")
	trail := strings.HasSuffix(q, "*")

	var p pattern
	switch {
	case lead && trail && len(q) >= 2:
		p.body = strings.TrimSpace(q[1 : len(q)-1])
		p.match = func(t string) bool { return strings.Contains(t, p.body) }
	case lead && trail:
		// a lone "*" is both leading and trailing with an empty body
		p.match = func(string) bool { return true }
	case lead:
		p.body = strings.TrimSpace(q[1:])
		p.match = func(t string) bool { return strings.HasSuffix(t, p.body) }
	case trail:
		p.body = strings.TrimSpace(q[:len(q)-1])
		p.match = func(t string) bool { return strings.HasPrefix(t, p.body) }
	default:
		p.body = q
		p.match = func(t string) bool { return t == p.body }
	}
	p.wildcard = lead || trail
	return p
}

// Exclusion keeps one lexical family out of wildcard results. When a
// wildcard body contains Trigger but none of Terms, alternates containing
// any of Terms are skipped for that query.
type Exclusion struct {
	Trigger string
	Terms   []string
}

// DefaultExclusion stops "*abba*"-style searches from being flooded by the
// habban/amabba family. The skipped alternates are those containing one of
// Terms, not Trigger, so "*abba*" still finds other words containing "abba".
var DefaultExclusion = Exclusion{
	Trigger: "abba",
	Terms:   []string{"habban", "amabba"},
}

func (x Exclusion) appliesTo(p pattern) bool {
	if !p.wildcard || x.Trigger == "" || !strings.Contains(p.body, x.Trigger) {
		return false
	}
	return !x.mentions(p.body)
}

func (x Exclusion) mentions(s string) bool {
	for _, t := range x.Terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
