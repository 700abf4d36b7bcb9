package models

import (
	"fmt"
	"slices"
	"strings"

	"respass/pkg/domain"
	dErrors "respass/pkg/domain-errors"
)

const (
	RoleResident = "res"
	RoleStaff    = "staff"
)

// Resident is one identity row. (Name, Building, Unit) is how parcels find
// their owner; it is not unique.
type Resident struct {
	ID       domain.ResidentID
	Name     string
	Building string
	Unit     string
	Role     string
}

// Contact is the provider-side contact record of a resident.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	ID    string `json:"id"`
}

// RegisterRequest is the addResident and updateResident body. The legacy
// "bld" key is accepted for building.
type RegisterRequest struct {
	Name     string `json:"name"`
	Building string `json:"building"`
	Bld      string `json:"bld"`
	Unit     string `json:"unit"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if r.Building == "" {
		r.Building = r.Bld
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Building = strings.TrimSpace(r.Building)
	r.Unit = strings.TrimSpace(r.Unit)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Name == "" || r.Building == "" || r.Unit == "" {
		return dErrors.New(dErrors.CodeValidation, "name, building and unit are required")
	}
	return nil
}

// HasContact reports whether the provider should learn about this resident.
func (r RegisterRequest) HasContact() bool {
	return r.Email != "" || r.Phone != ""
}

// Filter is one equality predicate of a resident query.
type Filter struct {
	Column string
	Value  string
}

// queryColumns maps accepted body keys to identity columns.
var queryColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"bld":      "bld",
	"building": "bld",
	"unit":     "unit",
	"role":     "role",
}

// QueryRequest is the queryResident body, {field: value, ...}. An empty
// object lists every resident.
type QueryRequest map[string]string

func (q *QueryRequest) Validate() error {
	for k := range *q {
		if _, ok := queryColumns[strings.ToLower(k)]; !ok {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown resident field %q", k))
		}
	}
	return nil
}

// Filters returns the predicates ordered by column.
func (q QueryRequest) Filters() []Filter {
	filters := make([]Filter, 0, len(q))
	for k, v := range q {
		filters = append(filters, Filter{Column: queryColumns[strings.ToLower(k)], Value: v})
	}
	slices.SortFunc(filters, func(a, b Filter) int {
		if c := strings.Compare(a.Column, b.Column); c != 0 {
			return c
		}
		return strings.Compare(a.Value, b.Value)
	})
	return filters
}
