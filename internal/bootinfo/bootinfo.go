// Package bootinfo reports when the system was last booted.
package bootinfo

import (
	"errors"
	"time"
)

// ErrUnsupported is returned on platforms without a boot time source.
var ErrUnsupported = errors.New("boot time is not available on this platform")

// Source provides the system boot timestamp.
type Source interface {
	BootTime() (time.Time, error)
}

// System reads the boot time from the operating system.
type System struct{}

// BootTime returns the boot time in the local zone, truncated to the second.
func (System) BootTime() (time.Time, error) {
	t, err := bootTime()
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(time.Second).Local(), nil
}

// Fixed always reports the same boot time.
type Fixed time.Time

// BootTime returns the fixed instant.
func (f Fixed) BootTime() (time.Time, error) {
	return time.Time(f), nil
}
