package searchindex

import (
	"errors"
	"fmt"
)

// Document fields addressable by criteria and sorting.
const (
	FieldID              = "id"
	FieldTitle           = "title"
	FieldCompany         = "company"
	FieldDescription     = "description"
	FieldSkills          = "skills"
	FieldLocation        = "location"
	FieldMinSalary       = "minSalary"
	FieldMaxSalary       = "maxSalary"
	FieldExperienceLevel = "experienceLevel"
	FieldPostedDate      = "postedDate"
	FieldIsActive        = "isActive"
)

type Op string

const (
	OpAnd      Op = "and"
	OpOr       Op = "or"
	OpContains Op = "contains"
	OpIs       Op = "is"
	OpIn       Op = "in"
	OpGTE      Op = "gte"
	OpLTE      Op = "lte"
)

var ErrInvalidCriteria = errors.New("invalid criteria")

// Criteria is a boolean filter tree. Groups (and/or) carry Children; leaves
// carry Field and Value.
type Criteria struct {
	Op       Op         `json:"op"`
	Field    string     `json:"field,omitempty"`
	Value    any        `json:"value,omitempty"`
	Children []Criteria `json:"children,omitempty"`
}

func And(c ...Criteria) Criteria { return Criteria{Op: OpAnd, Children: c} }
func Or(c ...Criteria) Criteria  { return Criteria{Op: OpOr, Children: c} }

// Contains matches a case-insensitive substring of a text field.
func Contains(field, s string) Criteria {
	return Criteria{Op: OpContains, Field: field, Value: s}
}

// Is matches exact equality on a text or boolean field.
func Is(field string, v any) Criteria {
	return Criteria{Op: OpIs, Field: field, Value: v}
}

// In matches when the field (or any element of a list field) equals one of values.
func In(field string, values []string) Criteria {
	return Criteria{Op: OpIn, Field: field, Value: values}
}

// GTE and LTE compare nullable numeric fields. Null never matches.
func GTE(field string, n int) Criteria { return Criteria{Op: OpGTE, Field: field, Value: n} }
func LTE(field string, n int) Criteria { return Criteria{Op: OpLTE, Field: field, Value: n} }

var textFields = map[string]bool{
	FieldTitle:           true,
	FieldCompany:         true,
	FieldDescription:     true,
	FieldLocation:        true,
	FieldExperienceLevel: true,
}

var numberFields = map[string]bool{
	FieldMinSalary: true,
	FieldMaxSalary: true,
}

// Validate checks that every leaf pairs an operator with a field and value
// type it supports.
func Validate(c Criteria) error {
	switch c.Op {
	case OpAnd, OpOr:
		for _, ch := range c.Children {
			if err := Validate(ch); err != nil {
				return err
			}
		}
		return nil
	case OpContains:
		if _, ok := c.Value.(string); !ok || !textFields[c.Field] {
			return invalid(c)
		}
	case OpIs:
		switch c.Value.(type) {
		case string:
			if !textFields[c.Field] {
				return invalid(c)
			}
		case bool:
			if c.Field != FieldIsActive {
				return invalid(c)
			}
		default:
			return invalid(c)
		}
	case OpIn:
		if _, ok := c.Value.([]string); !ok || (c.Field != FieldSkills && !textFields[c.Field]) {
			return invalid(c)
		}
	case OpGTE, OpLTE:
		if _, ok := c.Value.(int); !ok || !numberFields[c.Field] {
			return invalid(c)
		}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidCriteria, c.Op)
	}
	return nil
}

func invalid(c Criteria) error {
	return fmt.Errorf("%w: %s on %q with %T", ErrInvalidCriteria, c.Op, c.Field, c.Value)
}

// SortableFields lists the fields a query may order by.
var SortableFields = map[string]bool{
	FieldID:              true,
	FieldTitle:           true,
	FieldCompany:         true,
	FieldLocation:        true,
	FieldMinSalary:       true,
	FieldMaxSalary:       true,
	FieldExperienceLevel: true,
	FieldPostedDate:      true,
	FieldIsActive:        true,
}
