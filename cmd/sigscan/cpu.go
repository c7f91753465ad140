package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/mhr3/sigscan"
)

var cpuCmd = &cobra.Command{
	Use:   "cpu",
	Short: "Show the CPU features and the tier auto selection resolves to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCPU(cmd.OutOrStdout(), sigscan.DetectCapabilities())
	},
}

func init() {
	rootCmd.AddCommand(cpuCmd)
}

func printCPU(w io.Writer, caps sigscan.Capabilities) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "cpu:\t%s\n", orUnknown(cpuid.CPU.BrandName))
	fmt.Fprintf(tw, "vendor:\t%s\n", orUnknown(cpuid.CPU.VendorString))
	fmt.Fprintf(tw, "cores:\t%d physical, %d logical\n", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	fmt.Fprintf(tw, "cache line:\t%d bytes\n", cpuid.CPU.CacheLine)
	fmt.Fprintf(tw, "cpuid sse4.2/avx2:\t%t/%t\n", cpuid.CPU.Supports(cpuid.SSE42), cpuid.CPU.Supports(cpuid.AVX2))
	fmt.Fprintf(tw, "usable tiers:\t%s\n", usableTiers(caps))
	fmt.Fprintf(tw, "auto tier:\t%s\n", sigscan.SelectTier(sigscan.Auto, caps))

	return tw.Flush()
}

func usableTiers(caps sigscan.Capabilities) string {
	var names []string
	for _, t := range []sigscan.Tier{sigscan.Scalar, sigscan.SSE42, sigscan.AVX2} {
		if caps.Supports(t) {
			names = append(names, t.String())
		}
	}
	return strings.Join(names, ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
