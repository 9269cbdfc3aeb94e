// Package cpu reports the host features that matter when comparing tick
// throughput between machines.
//
// Detection runs once and is cached. Benchmarks print the report next to
// their timings so that numbers from different hosts can be told apart.
package cpu

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// Features describes the host a benchmark ran on.
type Features struct {
	Architecture string // runtime.GOARCH
	OS           string
	NumCPU       int
	GoVersion    string

	// Extensions lists the vector and bit-manipulation extensions present,
	// in a fixed per-architecture order.
	Extensions []string

	// Generic is true when the build has no vector path for this host.
	Generic bool
}

var (
	detectedFeatures Features
	detectOnce       sync.Once
)

// DetectFeatures returns the features of the current host.
func DetectFeatures() Features {
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
		detectedFeatures.Architecture = runtime.GOARCH
		detectedFeatures.OS = runtime.GOOS
		detectedFeatures.NumCPU = runtime.NumCPU()
		detectedFeatures.GoVersion = runtime.Version()
		detectedFeatures.Generic = len(detectedFeatures.Extensions) == 0
	})

	f := detectedFeatures
	f.Extensions = append([]string(nil), f.Extensions...)
	return f
}

// Has reports whether ext (case-insensitive) is among the detected extensions.
func (f Features) Has(ext string) bool {
	for _, e := range f.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// String formats f as a single report line.
func (f Features) String() string {
	ext := "generic"
	if len(f.Extensions) > 0 {
		ext = strings.Join(f.Extensions, ",")
	}
	return fmt.Sprintf("%s/%s cpus=%d %s [%s]", f.OS, f.Architecture, f.NumCPU, f.GoVersion, ext)
}

func collect(flags []flag) []string {
	var out []string
	for _, fl := range flags {
		if fl.on {
			out = append(out, fl.name)
		}
	}
	return out
}

type flag struct {
	name string
	on   bool
}
