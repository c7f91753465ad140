//go:build !noasm

package backend

import "golang.org/x/sys/cpu"

var (
	hasSSE42 = cpu.X86.HasSSE42
	hasAVX2  = cpu.X86.HasAVX2
)
