//go:build amd64

package cpu

import "golang.org/x/sys/cpu"

// SSE2 is part of the x86-64 baseline but reported for completeness.
func detectFeaturesImpl() Features {
	return Features{
		Extensions: collect([]flag{
			{"SSE2", cpu.X86.HasSSE2},
			{"SSE4.1", cpu.X86.HasSSE41},
			{"POPCNT", cpu.X86.HasPOPCNT},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"BMI2", cpu.X86.HasBMI2},
			{"AVX512F", cpu.X86.HasAVX512F},
		}),
	}
}
