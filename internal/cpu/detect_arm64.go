//go:build arm64

package cpu

import "golang.org/x/sys/cpu"

// ASIMD (NEON) is mandatory on ARMv8.
func detectFeaturesImpl() Features {
	return Features{
		Extensions: collect([]flag{
			{"NEON", cpu.ARM64.HasASIMD},
			{"ATOMICS", cpu.ARM64.HasATOMICS},
			{"CRC32", cpu.ARM64.HasCRC32},
			{"SVE", cpu.ARM64.HasSVE},
		}),
	}
}
