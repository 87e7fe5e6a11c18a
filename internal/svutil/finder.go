// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package svutil

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tfctl/wbctl/internal/snapshot"
)

var (
	// ErrNoVersions is returned when a store has no snapshot versions.
	ErrNoVersions = errors.New("no snapshot versions")
	// ErrVersionNotFound is returned when a spec matches no version.
	ErrVersionNotFound = errors.New("snapshot version not found")
)

// CurrentPrefix starts a relative spec: SV~0 is the most recent version,
// SV~1 the one before it.
const CurrentPrefix = "SV~"

// Resolve maps each spec onto one of versions, which must be ordered most
// recent first. With no specs the most recent version is returned. A spec can
// be:
//   - SV~N: the N-th most recent version
//   - 0, -1, -2...: the same, as a bare non-positive integer
//   - a positive integer: the version with that serial
//   - an existing file path: read from disk, outside the store
//   - anything else: the first version whose id starts with it
func Resolve(versions []*snapshot.Version, specs ...string) ([]*snapshot.Version, error) {
	if len(specs) == 0 {
		specs = []string{CurrentPrefix + "0"}
	}

	result := make([]*snapshot.Version, 0, len(specs))
	for _, spec := range specs {
		v, err := resolveSpec(spec, versions)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}

	return result, nil
}

func resolveSpec(spec string, versions []*snapshot.Version) (*snapshot.Version, error) {
	switch {
	case strings.HasPrefix(strings.ToUpper(spec), CurrentPrefix):
		index, err := strconv.Atoi(spec[len(CurrentPrefix):])
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid version spec: %s", spec)
		}
		return byIndex(index, versions)

	case isNumeric(spec):
		i, _ := strconv.Atoi(spec)
		if i <= 0 {
			return byIndex(-i, versions)
		}
		return bySerial(int64(i), versions)

	case isFilePath(spec):
		return &snapshot.Version{ID: spec, Path: spec}, nil

	default:
		return byIDPrefix(spec, versions)
	}
}

func byIndex(index int, versions []*snapshot.Version) (*snapshot.Version, error) {
	if len(versions) == 0 {
		return nil, ErrNoVersions
	}
	if index < 0 || index > len(versions)-1 {
		return nil, fmt.Errorf("%w: index %d out of range for %d versions", ErrVersionNotFound, index, len(versions))
	}
	return versions[index], nil
}

func bySerial(serial int64, versions []*snapshot.Version) (*snapshot.Version, error) {
	for _, v := range versions {
		if v.Serial == serial {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: serial %d", ErrVersionNotFound, serial)
}

func byIDPrefix(prefix string, versions []*snapshot.Version) (*snapshot.Version, error) {
	for _, v := range versions {
		if strings.HasPrefix(v.ID, prefix) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: id prefix %s", ErrVersionNotFound, prefix)
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func isFilePath(s string) bool {
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}
