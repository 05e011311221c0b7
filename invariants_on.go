//go:build !genid_noinvariants

package genid

// InvariantsEnabled reports whether checksum cross-validation is compiled in.
// Build with the genid_noinvariants tag to remove it from the hot path.
const InvariantsEnabled = true
