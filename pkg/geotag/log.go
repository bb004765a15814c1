package geotag

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Logger receives progress and skip reports.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
}

// Klog logs through k8s.io/klog/v2.
type Klog struct{}

// Infof logs at info level.
func (Klog) Infof(format string, args ...any) {
	klog.InfoDepth(1, fmt.Sprintf(format, args...))
}

// Warningf logs at warning level.
func (Klog) Warningf(format string, args ...any) {
	klog.WarningDepth(1, fmt.Sprintf(format, args...))
}
