// Package testutil provides fixture dictionaries for tests.
//
// This package is intended for use in tests and benchmarks only. It holds
// small Russian, Ukrainian and English paradigm sets, compiles them into
// dict.Source values and encodes them for both dictionary backends.
//
//	src := testutil.RussianSource(t)
//	bin := testutil.Binary(t, src)   // *bindict.Dict
//	pb := testutil.Proto(t, src)     // *protodict.Dict
//
// RNG generates random words for property tests.
package testutil
