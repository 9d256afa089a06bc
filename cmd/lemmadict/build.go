package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lemmago/alpha"
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/dict/bindict"
	"github.com/hupe1980/lemmago/dict/protodict"
	"github.com/hupe1980/lemmago/dictbuild"
	"github.com/hupe1980/lemmago/internal/compress"
	"github.com/hupe1980/lemmago/lang"
)

type buildFlags struct {
	name           string
	format         string
	compression    string
	diacritics     string
	maxBastardTail int
}

type buildResult struct {
	Name        string `json:"name"`
	Format      string `json:"format"`
	Compression string `json:"compression"`
	Bytes       int    `json:"bytes"`
	Fingerprint string `json:"fingerprint"`
}

func newBuildCmd(g *globalFlags) *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [source.json]",
		Short: "Compile a JSON dictionary source and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "blob name (default derived from the source file)")
	fs.StringVar(&f.format, "format", "binary", "dictionary layout (binary, proto)")
	fs.StringVar(&f.compression, "compress", "none", "envelope compression (none, lz4, zstd)")
	fs.StringVar(&f.diacritics, "diacritics", "", "strip diacritics of this language from stems (e.g. rus)")
	fs.IntVar(&f.maxBastardTail, "max-bastard-tail", -1, "stem characters kept in heuristic pattern keys")
	return cmd
}

func runBuild(cmd *cobra.Command, g *globalFlags, f *buildFlags, args []string) error {
	c, err := g.jsonCodec()
	if err != nil {
		return err
	}
	algo, err := compress.ParseAlgorithm(f.compression)
	if err != nil {
		return err
	}

	var (
		raw    []byte
		source string
	)
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		source = args[0]
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	var spec dictbuild.Spec
	if err := c.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("decode source: %w", err)
	}

	opts := []dictbuild.Option{dictbuild.WithMaxBastardTail(f.maxBastardTail)}
	if f.diacritics != "" {
		l, err := lang.Parse(f.diacritics)
		if err != nil {
			return err
		}
		tbl, ok := alpha.ForLanguage(l)
		if !ok || tbl.Diacritics() == nil {
			return fmt.Errorf("no diacritics known for %s", l)
		}
		opts = append(opts, dictbuild.WithDiacritics(tbl.Diacritics()))
	}

	src, err := dictbuild.Compile(spec, opts...)
	if err != nil {
		return err
	}

	data, ext, err := encode(src, f.format)
	if err != nil {
		return err
	}
	if algo != compress.None {
		if data, err = compress.Encode(data, algo); err != nil {
			return err
		}
		ext += "." + algo.String()
	}

	name := f.name
	if name == "" {
		if source == "" {
			return errors.New("--name is required when reading from stdin")
		}
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ext
	}

	store, err := g.storage.open(cmd.Context())
	if err != nil {
		return err
	}
	if err := store.Put(cmd.Context(), name, data); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}

	return writeJSON(cmd, c, buildResult{
		Name:        name,
		Format:      f.format,
		Compression: algo.String(),
		Bytes:       len(data),
		Fingerprint: src.Fingerprint,
	})
}

func encode(src *dict.Source, format string) ([]byte, string, error) {
	switch format {
	case "binary":
		data, err := bindict.Encode(src)
		return data, ".lemd", err
	case "proto":
		data, err := protodict.Encode(src)
		return data, ".pb", err
	default:
		return nil, "", fmt.Errorf("unknown format %q (want binary or proto)", format)
	}
}
