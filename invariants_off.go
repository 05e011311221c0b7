//go:build genid_noinvariants

package genid

// InvariantsEnabled reports whether checksum cross-validation is compiled in.
const InvariantsEnabled = false
