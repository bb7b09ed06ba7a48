//go:build !linux && !darwin

package interaction

import (
	"errors"
	"runtime"
)

func enableRawMode(fd int) (func() error, error) {
	return nil, errors.New("interactive input is not supported on " + runtime.GOOS)
}
