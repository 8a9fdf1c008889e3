package filter

import (
	"regexp"
	"strings"
)

// Metadata field names shared by the vector indexes and the shard docstores.
const (
	FieldDepartement   = "code_departement_insee"
	FieldResidentiel   = "is_residentiel"
	FieldTertiaire     = "is_tertiaire"
	FieldPassoire      = "is_passoire_thermique"
	FieldPlusDe5Etages = "plus_de_5_etages"
)

// departementPattern matches an explicit département reference in a lowercased
// question, including the Corsican codes 2a/2b.
var departementPattern = regexp.MustCompile(`d[ée]partement\s+(\d+[ab]?)`)

// rule maps lexical triggers to one equality predicate. Triggers are matched
// as substrings of the lowercased question.
type rule struct {
	triggers []string
	field    string
	value    string
}

var rules = []rule{
	{triggers: []string{"résidentiel"}, field: FieldResidentiel, value: "1"},
	{triggers: []string{"tertiaire"}, field: FieldTertiaire, value: "1"},
	{triggers: []string{"passoire thermique", "passoires thermiques", "f ou g"}, field: FieldPassoire, value: "1"},
	{triggers: []string{"plus de 5 étages"}, field: FieldPlusDe5Etages, value: "1"},
}

// Build derives a metadata filter from lexical cues in the question.
// Pure and deterministic: each matched trigger contributes exactly one
// predicate, combined conjunctively. No negation, no ranges.
func Build(question string) Expression {
	q := strings.ToLower(question)

	var must []Condition
	if m := departementPattern.FindStringSubmatch(q); m != nil {
		if cond, err := NewCondition(FieldDepartement, m[1]); err == nil {
			must = append(must, cond)
		}
	}
	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(q, trigger) {
				if cond, err := NewCondition(r.field, r.value); err == nil {
					must = append(must, cond)
				}
				break
			}
		}
	}

	expr, err := NewExpression(must)
	if err != nil {
		// unreachable with the fixed rule table; fall back to no restriction
		return Expression{}
	}
	return expr
}

// ShardKey extracts an explicit département reference from the question,
// reporting whether one was found. The same lexical cue that scopes the
// metadata filter also selects the shard.
func ShardKey(question string) (string, bool) {
	m := departementPattern.FindStringSubmatch(strings.ToLower(question))
	if m == nil {
		return "", false
	}
	return m[1], true
}
