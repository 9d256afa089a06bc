package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lemmago"
	"github.com/hupe1980/lemmago/analyzer"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lang"
	"github.com/hupe1980/lemmago/lemma"
	"github.com/hupe1980/lemmago/registry"
)

type analyzeFlags struct {
	dicts          []string
	accept         []string
	required       string
	maxLemmas      int
	minProbability float64
	allBastards    bool
}

type analyzeResult struct {
	Word   string        `json:"word"`
	Lemmas []lemma.Lemma `json:"lemmas"`
}

var acceptNames = map[string]lemma.Accept{
	"dictionary": lemma.AcceptDictionary,
	"bastard":    lemma.AcceptBastard,
	"sob":        lemma.AcceptSob,
	"foundling":  lemma.AcceptFoundling,
	"all":        lemma.AcceptAll,
}

func (f *analyzeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVar(&f.dicts, "dict", nil, "language=name of a dictionary to load (repeatable)")
	fs.StringSliceVar(&f.accept, "accept", []string{"dictionary", "bastard"}, "candidate kinds (dictionary, bastard, sob, foundling, all)")
	fs.StringVar(&f.required, "grammar", "", "required grammemes, e.g. S,gen")
	fs.IntVar(&f.maxLemmas, "max-lemmas", 0, "maximum lemmas per language (0 = unlimited)")
	fs.Float64Var(&f.minProbability, "min-probability", 0, "drop candidates below this probability")
	fs.BoolVar(&f.allBastards, "all-bastards", false, "collect heuristic candidates of every scheme")
	_ = cmd.MarkFlagRequired("dict")
}

func (f *analyzeFlags) options() (analyzer.Options, error) {
	var o analyzer.Options
	for _, name := range f.accept {
		a, ok := acceptNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return o, fmt.Errorf("unknown candidate kind %q", name)
		}
		o.Accept |= a
	}
	if f.required != "" {
		g, err := grammar.Parse(f.required)
		if err != nil {
			return o, err
		}
		o.RequiredGrammar = g
	}
	o.MaxLemmas = f.maxLemmas
	o.MinProbability = f.minProbability
	o.GenerateAllBastards = f.allBastards
	return o, nil
}

// lemmer loads every --dict entry into a new Lemmer. The returned registry
// backs the dictionaries and must be closed after use.
func (f *analyzeFlags) lemmer(ctx context.Context, g *globalFlags) (*lemmago.Lemmer, *registry.Registry, error) {
	logger, err := g.logger()
	if err != nil {
		return nil, nil, err
	}
	reg, err := g.registry(ctx)
	if err != nil {
		return nil, nil, err
	}

	lm := lemmago.New(lemmago.WithLogger(logger))
	for _, d := range f.dicts {
		code, name, ok := strings.Cut(d, "=")
		if !ok {
			_ = reg.Close()
			return nil, nil, fmt.Errorf("invalid --dict %q (want language=name)", d)
		}
		l, err := lang.Parse(code)
		if err != nil {
			_ = reg.Close()
			return nil, nil, err
		}
		if err := lm.RegisterFrom(ctx, reg, name, l, nil); err != nil {
			_ = reg.Close()
			return nil, nil, err
		}
	}
	return lm, reg, nil
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <word>...",
		Short: "Print the lemmas of words as JSON lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.jsonCodec()
			if err != nil {
				return err
			}
			o, err := f.options()
			if err != nil {
				return err
			}
			lm, reg, err := f.lemmer(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer reg.Close()

			res, err := lm.AnalyzeBatch(cmd.Context(), args, lm.Languages(), o)
			if err != nil {
				return err
			}
			for i, w := range args {
				if err := writeJSON(cmd, c, analyzeResult{Word: w, Lemmas: res[i]}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
