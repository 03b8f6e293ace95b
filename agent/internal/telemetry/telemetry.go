package telemetry

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Metrics are usage percentages for the primary resources.
type Metrics struct {
	CPUUsage  float64
	RAMUsage  float64
	DiskUsage float64
}

// Snapshot is one telemetry sample. Every field is best effort: a failing
// sub-collector leaves a sentinel ("Unknown"/0) instead of failing the whole
// snapshot.
type Snapshot struct {
	Hostname   string
	Username   string
	OS         string
	IPAddress  string
	Metrics    Metrics
	DeviceInfo map[string]string
}

const unknown = "Unknown"

// sub-collectors are variables so tests can stub failures
var (
	cpuPercent = func() (float64, error) {
		vals, err := cpu.Percent(time.Second, false)
		if err != nil {
			return 0, err
		}
		if len(vals) == 0 {
			return 0, fmt.Errorf("no cpu sample")
		}
		return vals[0], nil
	}
	ramPercent = func() (float64, error) {
		vm, err := mem.VirtualMemory()
		if err != nil {
			return 0, err
		}
		return vm.UsedPercent, nil
	}
	diskPercent = func() (float64, error) {
		usage, err := disk.Usage(rootVolume())
		if err != nil {
			return 0, err
		}
		return usage.UsedPercent, nil
	}
	hostInfo = host.Info
	cpuInfo  = cpu.Info
)

func rootVolume() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

// Collect gathers one snapshot from the local OS. It never returns an error;
// it only takes as long as the 1s CPU sampling window plus cheap reads.
func Collect() Snapshot {
	s := Snapshot{
		Hostname:   unknown,
		Username:   unknown,
		OS:         runtime.GOOS,
		IPAddress:  "0.0.0.0",
		DeviceInfo: map[string]string{},
	}

	if hn, err := os.Hostname(); err == nil && hn != "" {
		s.Hostname = hn
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		s.Username = u.Username
	} else if env := os.Getenv("USERNAME"); env != "" {
		s.Username = env
	} else if env := os.Getenv("USER"); env != "" {
		s.Username = env
	}

	if v, err := cpuPercent(); err == nil {
		s.Metrics.CPUUsage = v
	}
	if v, err := ramPercent(); err == nil {
		s.Metrics.RAMUsage = v
	}
	if v, err := diskPercent(); err == nil {
		s.Metrics.DiskUsage = v
	}

	s.DeviceInfo["machine"] = runtime.GOARCH
	s.DeviceInfo["processor"] = unknown
	s.DeviceInfo["platform"] = runtime.GOOS
	if info, err := hostInfo(); err == nil {
		s.OS = fmt.Sprintf("%s-%s-%s", info.Platform, info.PlatformVersion, info.KernelVersion)
		s.DeviceInfo["platform"] = s.OS
		s.DeviceInfo["boot_time"] = fmt.Sprintf("%d", info.BootTime)
	}
	if infos, err := cpuInfo(); err == nil && len(infos) > 0 {
		s.DeviceInfo["processor"] = infos[0].ModelName
	}

	if ip := OutboundIP(); ip != "" {
		s.IPAddress = ip
	}
	return s
}
