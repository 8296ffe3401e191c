//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package bootinfo

import "time"

func bootTime() (time.Time, error) {
	return time.Time{}, ErrUnsupported
}
