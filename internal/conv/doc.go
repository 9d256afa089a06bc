// Package conv provides safe integer type conversion utilities.
//
// The dictionary writers store offsets as uint32 and table references as
// uint16. These helpers reject values that do not fit instead of silently
// truncating them.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
