package desktop

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Usage is a capacity reading in bytes.
type Usage struct {
	Total uint64
	Free  uint64
}

type Process interface {
	Pid() int32
	Name(ctx context.Context) (string, error)
	Terminate(ctx context.Context) error
}

// Host inspects the local machine.
type Host interface {
	Processes(ctx context.Context) ([]Process, error)
	Platform(ctx context.Context) (string, error)
	Processor(ctx context.Context) (string, error)
	Memory(ctx context.Context) (Usage, error)
	Disk(ctx context.Context, path string) (Usage, error)
	CPUPercent(ctx context.Context) (float64, error)
}

type psHost struct {
	sample time.Duration
}

// NewHost reads the machine through gopsutil. CPU usage is sampled over
// sample.
func NewHost(sample time.Duration) Host {
	return psHost{sample: sample}
}

func (psHost) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		out = append(out, psProcess{p: p})
	}
	return out, nil
}

func (psHost) Platform(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	name := info.Platform
	if name == "" {
		name = info.OS
	}
	return strings.TrimSpace(name + " " + info.PlatformVersion), nil
}

func (psHost) Processor(ctx context.Context) (string, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 || infos[0].ModelName == "" {
		return runtime.GOARCH, nil
	}
	return infos[0].ModelName, nil
}

func (psHost) Memory(ctx context.Context) (Usage, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Total: vm.Total, Free: vm.Available}, nil
}

func (psHost) Disk(ctx context.Context, path string) (Usage, error) {
	du, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Total: du.Total, Free: du.Free}, nil
}

func (h psHost) CPUPercent(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, h.sample, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

type psProcess struct {
	p *process.Process
}

func (p psProcess) Pid() int32 { return p.p.Pid }

func (p psProcess) Name(ctx context.Context) (string, error) {
	return p.p.NameWithContext(ctx)
}

func (p psProcess) Terminate(ctx context.Context) error {
	return p.p.TerminateWithContext(ctx)
}
