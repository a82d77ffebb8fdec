// Package platform maps the host operating system to the reference
// directory suffix and collects host information for performance reports.
package platform

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/nandrad-tools/regsuite/internal/errors"
)

// Reference directory suffixes per operating system.
const (
	Linux   = "gcc_linux"
	Windows = "VC14_win64"
	MacOS   = "gcc_mac"
)

var ids = map[string]string{
	"linux":   Linux,
	"windows": Windows,
	"darwin":  MacOS,
}

// ID returns the platform identifier for goos.
func ID(goos string) (string, error) {
	id, ok := ids[goos]
	if !ok {
		return "", errors.Environmentf("unsupported operating system %q", goos)
	}
	return id, nil
}

// Resolve returns override when set, otherwise the identifier of the
// running operating system.
func Resolve(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return ID(runtime.GOOS)
}

// IsWindows reports whether the running operating system is Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// HostInfo describes the machine a performance run was measured on.
type HostInfo struct {
	Arch     string
	Hostname string
	Platform string
	CPUModel string
	CPUCount int
	CPUFreq  float64 // MHz, averaged over reported CPUs
	RAM      float64 // GiB
}

// Host collects host information. Fields that cannot be determined are
// left empty.
func Host() HostInfo {
	info := HostInfo{Arch: runtime.GOARCH}

	if hostStat, err := host.Info(); err == nil && hostStat != nil {
		info.Hostname = hostStat.Hostname
		info.Platform = strings.TrimSpace(hostStat.Platform + " " + hostStat.PlatformVersion)
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		totalFreq := 0.0
		for _, c := range cpuStat {
			totalFreq += c.Mhz
		}
		info.CPUModel = cpuStat[0].ModelName
		info.CPUFreq = totalFreq / float64(len(cpuStat))
	}
	if n, err := cpu.Counts(true); err == nil {
		info.CPUCount = n
	}
	if vmStat, err := mem.VirtualMemory(); err == nil && vmStat != nil {
		info.RAM = float64(vmStat.Total) / 1024 / 1024 / 1024
	}
	return info
}

// Lines renders the host information as report header lines.
func (h HostInfo) Lines() []string {
	lines := []string{fmt.Sprintf("host: %s (%s, %s)", orUnknown(h.Hostname), orUnknown(h.Platform), h.Arch)}
	lines = append(lines, fmt.Sprintf("cpu: %s, %d logical cores, %.0f MHz", orUnknown(h.CPUModel), h.CPUCount, h.CPUFreq))
	lines = append(lines, fmt.Sprintf("memory: %.1f GiB", h.RAM))
	return lines
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
