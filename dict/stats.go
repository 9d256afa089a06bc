package dict

// Stats reports the table sizes of a loaded dictionary.
type Stats struct {
	Grammars    int `json:"grammars"`
	GrammarRefs int `json:"grammar_refs"`
	Schemes     int `json:"schemes"`
	Blocks      int `json:"blocks"`
	Patterns    int `json:"patterns"`
	PatternRefs int `json:"pattern_refs"`
	PatternKeys int `json:"pattern_keys"`
	FlexTries   int `json:"flex_tries"`
}
