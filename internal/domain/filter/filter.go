package filter

import "fmt"

// MaxConditions caps the number of predicates in a single expression.
const MaxConditions = 32

// Expression is a conjunction of equality predicates over document metadata.
// An empty expression places no restriction on the search.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must []Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Expression{must: must}, nil
}

// Must returns the conjunction's predicates.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no predicates.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Condition is a single equality predicate: metadata field = value.
type Condition struct {
	key   string
	value string
}

// NewCondition creates an equality predicate.
func NewCondition(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("filter value is required for key %q", key)
	}
	return Condition{key: key, value: value}, nil
}

// Key returns the metadata field name.
func (c Condition) Key() string { return c.key }

// Value returns the exact match value.
func (c Condition) Value() string { return c.value }
