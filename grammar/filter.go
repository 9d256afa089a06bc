package grammar

// Filter accepts wordforms whose stem and flexion grammar together carry every
// required grammeme. A zero Filter accepts everything.
type Filter struct {
	Required String
}

// NewFilter returns a filter requiring the given grammemes.
func NewFilter(required String) Filter {
	return Filter{Required: required}
}

// ProperStem reports whether a paradigm with stem grammar stem can produce any
// accepted form. Grammemes that belong to the stem grammar's categories but
// differ from the required ones rule the paradigm out.
func (f Filter) ProperStem(stem String) bool {
	for _, g := range f.Required {
		if stem.Has(Grammeme(g)) {
			continue
		}
		if conflicts(stem, Grammeme(g)) {
			return false
		}
	}
	return true
}

// Match reports whether stem and flex together contain all required grammemes.
func (f Filter) Match(stem, flex String) bool {
	for _, g := range f.Required {
		if !stem.Has(Grammeme(g)) && !flex.Has(Grammeme(g)) {
			return false
		}
	}
	return true
}

// conflicts reports whether s already holds another value of g's category.
func conflicts(s String, g Grammeme) bool {
	cat := Category(g)
	if cat == CategoryNone {
		return false
	}
	for _, o := range s {
		if Grammeme(o) != g && Category(Grammeme(o)) == cat {
			return true
		}
	}
	return false
}
