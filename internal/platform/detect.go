package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect uses runtime.GOOS and runtime.GOARCH for OS and architecture, and
// gopsutil for Linux distribution details. If distribution detection fails
// the distro fields stay empty; only cancellation is an error.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		Arch:    normalizeArch(runtime.GOARCH),
		ArchRaw: runtime.GOARCH,
	}

	if !info.IsLinux() {
		return info, nil
	}

	distro, family, distroVersion, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	if distro = normalizeID(distro); distro != "" {
		info.Distro = distro
		info.Family = mapFamily(family)
		info.DistroVersion = normalizeID(distroVersion)
	}

	return info, nil
}

// StaticDetector returns a fixed Info. It is used in tests and when the
// caller already knows the target platform.
type StaticDetector struct {
	Info *Info
}

// Detect returns a copy of the configured info.
func (d StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Info == nil {
		return nil, fmt.Errorf("static detector has no platform info")
	}
	info := *d.Info
	return &info, nil
}
