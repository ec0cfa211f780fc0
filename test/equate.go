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

package test

import (
	"testing"
)

// ExpectEquality is used to test equality between one value and another.
// Generally, both values must be of the same type but if value is of type
// uint8 or uint16, the expected value can be an int. The reason for this is
// that a literal number value is of type int and it is very convenient to
// write something like this, without having to cast the expected value:
//
//	var r uint16
//	r = someFunction()
//	test.ExpectEquality(t, r, 10)
//
// This is by no means a comprehensive comparison function. With a bit more
// work with the reflect package we could generalise the testing a lot more.
// As it is however, it's good enough.
func ExpectEquality(t *testing.T, value, expectedValue interface{}) bool {
	t.Helper()

	switch v := value.(type) {
	default:
		t.Fatalf("unhandled type for ExpectEquality() function (%T)", v)

	case nil:
		if expectedValue != nil {
			t.Errorf("equality test of type %T failed (%v - wanted nil)", v, v)
			return false
		}

	case int:
		switch ev := expectedValue.(type) {
		case int:
			if v != ev {
				t.Errorf("equality test of type %T failed (%d - wanted %d)", v, v, ev)
				return false
			}
		default:
			t.Fatalf("values for ExpectEquality() are not the same type (%T and %T)", v, expectedValue)
		}

	case int64:
		switch ev := expectedValue.(type) {
		case int64:
			if v != ev {
				t.Errorf("equality test of type %T failed (%d - wanted %d)", v, v, ev)
				return false
			}
		case int:
			if v != int64(ev) {
				t.Errorf("equality test of type %T failed (%d - wanted %d)", v, v, ev)
				return false
			}
		default:
			t.Fatalf("values for ExpectEquality() are not the same type (%T and %T)", v, expectedValue)
		}

	case uint8:
		switch ev := expectedValue.(type) {
		case int:
			if v != uint8(ev) {
				t.Errorf("equality test of type %T failed (%#02x - wanted %#02x)", v, v, ev)
				return false
			}
		case uint8:
			if v != ev {
				t.Errorf("equality test of type %T failed (%#02x - wanted %#02x)", v, v, ev)
				return false
			}
		default:
			t.Fatalf("values for ExpectEquality() are not compatible (%T and %T)", v, ev)
		}

	case uint16:
		switch ev := expectedValue.(type) {
		case int:
			if v != uint16(ev) {
				t.Errorf("equality test of type %T failed (%#04x - wanted %#04x)", v, v, ev)
				return false
			}
		case uint16:
			if v != ev {
				t.Errorf("equality test of type %T failed (%#04x - wanted %#04x)", v, v, ev)
				return false
			}
		default:
			t.Fatalf("values for ExpectEquality() are not compatible (%T and %T)", v, ev)
		}

	case float64:
		switch ev := expectedValue.(type) {
		case float64:
			if v != ev {
				t.Errorf("equality test of type %T failed (%f - wanted %f)", v, v, ev)
				return false
			}
		default:
			t.Fatalf("values for ExpectEquality() are not the same type (%T and %T)", v, expectedValue)
		}

	case string:
		switch ev := expectedValue.(type) {
		case string:
			if v != ev {
				t.Errorf("equality test of type %T failed (%s - wanted %s)", v, v, ev)
				return false
			}
		default:
			t.Fatalf("values for ExpectEquality() are not the same type (%T and %T)", v, expectedValue)
		}

	case bool:
		switch ev := expectedValue.(type) {
		case bool:
			if v != ev {
				t.Errorf("equality test of type %T failed (%v - wanted %v)", v, v, ev)
				return false
			}
		default:
			t.Fatalf("values for ExpectEquality() are not the same type (%T and %T)", v, expectedValue)
		}
	}

	return true
}

// DemandEquality is the same as ExpectEquality except that a failed test is a
// testing fatality.
//
// This is particularly useful if the values being tested are used in further
// tests and so must be correct. For example, testing that the lengths of two
// slices are equal before iterating over them in unison.
func DemandEquality(t *testing.T, value, expectedValue interface{}) {
	t.Helper()

	if !ExpectEquality(t, value, expectedValue) {
		t.Fatal("cannot continue with remaining tests")
	}
}
