//go:build !amd64 || noasm

package sigscan

// No vector kernels are built for this target; every scan resolves to Scalar.
func detectCapabilities() Capabilities {
	return Capabilities{}
}
