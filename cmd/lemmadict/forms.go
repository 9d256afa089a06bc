package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lang"
	"github.com/hupe1980/lemmago/lemma"
)

type formEntry struct {
	Text    string         `json:"text"`
	Grammar grammar.String `json:"grammar"`
}

type formsResult struct {
	Lemma    string        `json:"lemma"`
	Language lang.Language `json:"language"`
	Quality  lemma.Quality `json:"quality"`
	Forms    []formEntry   `json:"forms"`
}

func newFormsCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "forms <word>",
		Short: "List the wordforms of every lemma of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.jsonCodec()
			if err != nil {
				return err
			}
			o, err := f.options()
			if err != nil {
				return err
			}
			// --grammar filters the generated forms, not the analysis.
			required := o.RequiredGrammar
			o.RequiredGrammar = nil

			lm, reg, err := f.lemmer(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer reg.Close()

			for _, l := range lm.Analyze(args[0], lm.Languages(), o) {
				forms, err := lm.GenerateFiltered(l, required)
				if err != nil {
					// Foundlings have no paradigm.
					continue
				}
				res := formsResult{Lemma: l.Text, Language: l.Language, Quality: l.Quality}
				for w := range forms {
					res.Forms = append(res.Forms, formEntry{Text: w.Text(), Grammar: w.Grammars()})
				}
				if err := writeJSON(cmd, c, res); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
