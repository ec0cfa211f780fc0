// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

package resources

import (
	"os"
	"path/filepath"
	"strings"
)

// the resource directory used by all calls to JoinPath.
const resourceDir = "gopher80"

// base path override. set with SetBase().
var base string

// SetBase overrides the automatically determined base path. Useful for
// command line options that specify an alternative location for resource
// files.
func SetBase(path string) {
	base = path
}

// BaseDir returns the path to the directory in which resources are stored,
// without creating it.
func BaseDir() (string, error) {
	if base != "" {
		return base, nil
	}

	ucd, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(ucd, resourceDir), nil
}

// JoinPath prepends the supplied path with an OS specific base path, if
// required.
//
// The function creates all folders necessary to reach the end of sub-path. It
// does not otherwise touch or create the file.
func JoinPath(path ...string) (string, error) {
	b, err := BaseDir()
	if err != nil {
		return "", err
	}

	// do not prepend base path if it is already present
	p := filepath.Join(path...)
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	// check if path already exists
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	// create path if necessary
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}
