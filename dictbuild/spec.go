package dictbuild

// Form is one wordform of a paradigm.
type Form struct {
	Flex      string `json:"flex"`
	Prefix    string `json:"prefix,omitempty"`
	Grammar   string `json:"grammar"`
	Frequency uint32 `json:"frequency,omitempty"`
}

// Paradigm describes how a class of words inflects.
type Paradigm struct {
	Name        string `json:"name"`
	LemmaFlex   string `json:"lemma_flex"`
	LemmaPrefix string `json:"lemma_prefix,omitempty"`
	StemGrammar string `json:"stem_grammar"`
	Forms       []Form `json:"forms"`
	Frequency   uint32 `json:"frequency,omitempty"`
	// Fallback marks the paradigm used for words nothing else matches.
	Fallback bool `json:"fallback,omitempty"`
}

// Lexeme is a dictionary word: a stem inflected by a named paradigm.
type Lexeme struct {
	Stem      string `json:"stem"`
	Paradigm  string `json:"paradigm"`
	Frequency uint32 `json:"frequency,omitempty"`
}

// Spec is the full input of a dictionary build.
type Spec struct {
	Fingerprint string     `json:"fingerprint,omitempty"`
	Paradigms   []Paradigm `json:"paradigms"`
	Lexemes     []Lexeme   `json:"lexemes"`
	// Bastards enables heuristic patterns for unknown words.
	Bastards bool `json:"bastards,omitempty"`
}
