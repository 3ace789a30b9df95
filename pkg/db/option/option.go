// Package option provides composable gorm query options shared by repositories.
package option

import (
	"fmt"

	"gorm.io/gorm"
)

type Operator string

const (
	EQ  Operator = "="
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

type conditionOption struct {
	cond Condition
}

func (o conditionOption) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s %s ?", o.cond.Field, o.cond.Operator), o.cond.Value)
}

// ApplyOperator adds a single field comparison to the query.
func ApplyOperator(cond Condition) QueryOption {
	return conditionOption{cond: cond}
}

type QuerySortBy struct {
	// Allow whitelists sortable columns. The first allowed entry matching
	// Field is used; defaults preserve insertion order semantics.
	Allow map[string]bool
	Field string
	Desc  bool
}

type sortOption struct {
	sort QuerySortBy
}

func (o sortOption) Apply(db *gorm.DB) *gorm.DB {
	field := o.sort.Field
	if field == "" || (o.sort.Allow != nil && !o.sort.Allow[field]) {
		return db
	}
	direction := "ASC"
	if o.sort.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", field, direction))
}

func WithSortBy(sort QuerySortBy) QueryOption {
	return sortOption{sort: sort}
}

type orderOption struct {
	clause string
}

func (o orderOption) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.clause)
}

// WithOrder adds a raw ORDER BY clause. Callers must pass trusted input.
func WithOrder(clause string) QueryOption {
	return orderOption{clause: clause}
}

type limitOption struct {
	limit int
}

func (o limitOption) Apply(db *gorm.DB) *gorm.DB {
	if o.limit <= 0 {
		return db
	}
	return db.Limit(o.limit)
}

func WithLimit(limit int) QueryOption {
	return limitOption{limit: limit}
}

type offsetOption struct {
	offset int
}

func (o offsetOption) Apply(db *gorm.DB) *gorm.DB {
	if o.offset <= 0 {
		return db
	}
	return db.Offset(o.offset)
}

func WithOffset(offset int) QueryOption {
	return offsetOption{offset: offset}
}
