//go:build !noasm

package sigscan

import "golang.org/x/sys/cpu"

func detectCapabilities() Capabilities {
	return Capabilities{
		SSE42: cpu.X86.HasSSE42,
		AVX2:  cpu.X86.HasAVX2,
	}
}
