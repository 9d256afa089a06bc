package grammar

// CategoryKind groups grammemes that are mutually exclusive.
type CategoryKind uint8

const (
	CategoryNone CategoryKind = iota
	CategoryPOS
	CategoryGender
	CategoryAnimacy
	CategoryNumber
	CategoryCase
	CategoryTense
	CategoryMood
	CategoryPerson
	CategoryAspect
)

// Category returns the exclusive category of g, or CategoryNone for markers
// that combine freely.
func Category(g Grammeme) CategoryKind {
	switch {
	case g >= Noun && g <= Composite:
		return CategoryPOS
	case g >= Masculine && g <= MasFem:
		return CategoryGender
	case g == Animated || g == Inanimated:
		return CategoryAnimacy
	case g == Singular || g == Plural:
		return CategoryNumber
	case g >= Nominative && g <= Vocative:
		return CategoryCase
	case g >= Present && g <= Future:
		return CategoryTense
	case g >= Indicative && g <= Gerund:
		return CategoryMood
	case g >= Person1 && g <= Person3:
		return CategoryPerson
	case g == Imperfective || g == Perfective:
		return CategoryAspect
	default:
		return CategoryNone
	}
}
