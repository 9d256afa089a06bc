// Package lemmago provides dictionary-driven morphological analysis.
//
// A Lemmer holds one compiled dictionary per language and analyzes words
// against every language of a mask, returning ranked lemma candidates with
// their grammatical readings. Dictionaries are produced by the dictbuild
// compiler and read in place from either the binary (bindict) or the
// protobuf (protodict) layout.
//
// # Quick Start
//
//	reg := registry.New(blobstore.NewLocalStore("./dicts"))
//	defer reg.Close()
//
//	lm := lemmago.New(lemmago.WithLogLevel(slog.LevelInfo))
//	_ = lm.RegisterFrom(ctx, reg, "rus.lemd", lang.Russian, nil)
//
//	for _, l := range lm.Analyze("дням", lang.NewMask(lang.Russian), analyzer.DefaultOptions()) {
//	    fmt.Println(l) // день [rus] S,m,inan (dat,pl)
//	}
//
// # Candidate Kinds
//
// Dictionary lemmas come from full-word patterns. Bastards are inflected by
// analogy with a known stem ending and require lemma.AcceptBastard. A
// foundling is the trivial analysis of a word no dictionary could analyze and
// requires lemma.AcceptFoundling.
//
// # Generation
//
// Every lemma carries its paradigm id, so the forms of a lemma can be listed
// again with Generate:
//
//	forms, _ := lm.Generate(l)
//	for w := range forms {
//	    fmt.Println(w)
//	}
//
// # Storage
//
// Dictionaries are loaded through a registry from any blobstore.Store: local
// memory-mapped files, S3 or MinIO buckets, optionally behind a local mirror.
package lemmago
