//go:build !amd64 || noasm

package backend

// The vector matchers fall back to scanGeneric here and run anywhere.
var (
	hasSSE42 = true
	hasAVX2  = true
)
