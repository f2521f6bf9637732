package silo

import "github.com/TheBitDrifter/mask"

// QuerySpec is the declarative required/optional/with/without component
// spec, built with NewQuery().Required(...)... Matching is evaluated with a
// positive/negative mask pair checked against each candidate entity's
// component bitset.
type QuerySpec struct {
	required   []Component
	optional   []Component
	with       []Component
	without    []Component
	wantEntity bool
}

// NewQuery starts an empty query spec.
func NewQuery() *QuerySpec {
	return &QuerySpec{}
}

// Required declares components every matched entity must have; their values
// are retrievable via ComponentType[T].Get.
func (q *QuerySpec) Required(cs ...Component) *QuerySpec {
	q.required = append(q.required, cs...)
	return q
}

// Optional declares components that may or may not be present; their values
// are retrievable via ComponentType[T].GetOptional.
func (q *QuerySpec) Optional(cs ...Component) *QuerySpec {
	q.optional = append(q.optional, cs...)
	return q
}

// With declares components that must be present but are not returned.
func (q *QuerySpec) With(cs ...Component) *QuerySpec {
	q.with = append(q.with, cs...)
	return q
}

// Without declares components that must be absent.
func (q *QuerySpec) Without(cs ...Component) *QuerySpec {
	q.without = append(q.without, cs...)
	return q
}

// Entities marks that the result should carry entity ids, letting an
// entities-only query with no Required components still be valid.
func (q *QuerySpec) Entities() *QuerySpec {
	q.wantEntity = true
	return q
}

// declares reports whether id was named Required or Optional by this spec,
// the set a system is allowed to Get/GetOptional from a Cursor built from it.
func (q *QuerySpec) declares(id ComponentID) bool {
	for _, c := range q.required {
		if c.componentID() == id {
			return true
		}
	}
	for _, c := range q.optional {
		if c.componentID() == id {
			return true
		}
	}
	return false
}

// plan validates the spec (empty required with no Entity marker is an
// error; duplicate types across roles is an error) and precomputes the
// positive/negative masks used for per-candidate filtering.
func (q *QuerySpec) plan() (positive, negative mask.Mask, driver ComponentID, hasDriver bool, err error) {
	seen := map[ComponentID]bool{}
	mark := func(c Component, role string) error {
		id := c.componentID()
		if seen[id] {
			return DuplicateQueryTypeError{ComponentID: id}
		}
		seen[id] = true
		return nil
	}

	for _, c := range q.required {
		if err := mark(c, "required"); err != nil {
			return positive, negative, 0, false, err
		}
		positive.Mark(uint32(c.componentID()))
	}
	for _, c := range q.with {
		if err := mark(c, "with"); err != nil {
			return positive, negative, 0, false, err
		}
		positive.Mark(uint32(c.componentID()))
	}
	for _, c := range q.optional {
		if err := mark(c, "optional"); err != nil {
			return positive, negative, 0, false, err
		}
	}
	for _, c := range q.without {
		if err := mark(c, "without"); err != nil {
			return positive, negative, 0, false, err
		}
		negative.Mark(uint32(c.componentID()))
	}

	if len(q.required) == 0 && !q.wantEntity {
		return positive, negative, 0, false, EmptyQueryError{}
	}
	if len(q.required) == 0 && len(q.with) == 0 {
		return positive, negative, 0, false, nil
	}

	driver = q.driverCandidates()[0]
	return positive, negative, driver, true, nil
}

// driverCandidates returns the required∪with component ids in undefined
// but stable order; the caller picks the smallest-length column among them.
func (q *QuerySpec) driverCandidates() []ComponentID {
	ids := make([]ComponentID, 0, len(q.required)+len(q.with))
	for _, c := range q.required {
		ids = append(ids, c.componentID())
	}
	for _, c := range q.with {
		ids = append(ids, c.componentID())
	}
	return ids
}
