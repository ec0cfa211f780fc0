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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/test"
)

func TestCentralLogger(t *testing.T) {
	logger.Clear()

	w := &strings.Builder{}

	logger.Write(w)
	test.ExpectEquality(t, w.String(), "")

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	// clear the builder before continuing, makes comparisons easier to manage
	w.Reset()

	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	logger.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	w.Reset()
	logger.Tail(w, 2)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	w.Reset()
	logger.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	// and no entries
	w.Reset()
	logger.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")

	logger.Clear()
}

func TestRepeatCollapse(t *testing.T) {
	logger.Clear()

	w := &strings.Builder{}

	logger.Log(logger.Allow, "tag", "detail")
	logger.Log(logger.Allow, "tag", "detail")
	logger.Log(logger.Allow, "tag", "detail")
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "tag: detail (repeat x3)\n")

	// a different detail breaks the run
	w.Reset()
	logger.Log(logger.Allow, "tag", "other detail")
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "tag: detail (repeat x3)\ntag: other detail\n")

	logger.Clear()
}

type prohibit struct{}

func (_ prohibit) AllowLogging() bool {
	return false
}

func TestPermissions(t *testing.T) {
	logger.Clear()

	w := &strings.Builder{}

	logger.Log(prohibit{}, "tag", "detail")
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "")

	logger.Clear()
}

func TestEchoFilter(t *testing.T) {
	logger.Clear()

	w := &strings.Builder{}
	logger.SetEcho(w, false)
	defer logger.SetEcho(nil, false)

	logger.SetEchoFilter(func(tag string) bool { return tag == "wanted" })
	defer logger.SetEchoFilter(nil)

	logger.Log(logger.Allow, "unwanted", "should not appear")
	logger.Log(logger.Allow, "wanted", "should appear")
	test.ExpectEquality(t, w.String(), "wanted: should appear\n")

	// the full log retains the filtered entry
	w.Reset()
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "unwanted: should not appear\nwanted: should appear\n")

	logger.Clear()
}
