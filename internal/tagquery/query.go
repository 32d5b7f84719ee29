// Package tagquery implements the compound tag filter language:
// space-separated terms are OR'd, "+"-joined tags inside a term are
// AND'd, and a "!" prefix negates one tag.
package tagquery

import (
	"fmt"
	"strings"
)

// SyntaxError reports a malformed query, carrying the offending token.
type SyntaxError struct {
	Token  string
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid query: %s", e.Reason)
	}
	return fmt.Sprintf("invalid query term %q: %s", e.Token, e.Reason)
}

// cond tests the presence (or absence, when negated) of one tag.
type cond struct {
	tag    string
	negate bool
}

// group is a conjunction of conds. The query matches if any group does.
type group []cond

// Query is a parsed tag filter expression.
type Query struct {
	groups []group
	text   string
}

// String returns the original query text.
func (q Query) String() string { return q.text }

// IsZero reports whether the query is empty (unparsed).
func (q Query) IsZero() bool { return len(q.groups) == 0 }

// Parse parses a tag query. The input must contain at least one term.
func Parse(text string) (Query, error) {
	terms := strings.Fields(text)
	if len(terms) == 0 {
		return Query{}, &SyntaxError{Reason: "empty query"}
	}

	q := Query{text: strings.Join(terms, " ")}
	for _, term := range terms {
		g, err := parseGroup(term)
		if err != nil {
			return Query{}, err
		}
		q.groups = append(q.groups, g)
	}
	return q, nil
}

func parseGroup(term string) (group, error) {
	var g group
	for _, tok := range strings.Split(term, "+") {
		neg := false
		if strings.HasPrefix(tok, "!") {
			neg = true
			tok = tok[1:]
		}
		if tok == "" {
			return nil, &SyntaxError{Token: term, Reason: "missing tag name"}
		}
		if strings.ContainsAny(tok, "!+") {
			return nil, &SyntaxError{Token: term, Reason: "reserved character inside tag name"}
		}
		g = append(g, cond{tag: strings.ToLower(tok), negate: neg})
	}
	return g, nil
}

// Match reports whether a record's tag set satisfies the query: at least
// one OR-group's conditions, negations included, must all hold. An empty
// tag set can only satisfy groups made solely of negations.
func (q Query) Match(tags []string) bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}

	for _, g := range q.groups {
		if g.match(set) {
			return true
		}
	}
	return false
}

func (g group) match(set map[string]bool) bool {
	for _, c := range g {
		if set[c.tag] == c.negate {
			return false
		}
	}
	return true
}
