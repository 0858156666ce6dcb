//go:build !linux && !darwin

package crosscheck

import "errors"

func systemMemorySource() (Source, error) {
	return Source{}, errors.New("no system memory source on this platform")
}
