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

package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/jetsetilly/gopher80/curated"
)

// Value represents the actual Go value of a configuration option.
type Value interface{}

// types supported by the config system must implement the option interface.
type option interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
}

// Bool implements a boolean option. The INI representations accepted by Set()
// are those listed in the user documentation: true, false, 1 and 0.
type Bool struct {
	value    atomic.Value // bool
	hookPost func(value Value) error
}

func (p *Bool) String() string {
	ov := p.value.Load()
	if ov == nil {
		return "false"
	}
	return fmt.Sprintf("%v", ov.(bool))
}

// Set new value to Bool type. New value must be of type bool or string.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		switch strings.ToLower(v) {
		case "true", "1":
			nv = true
		case "false", "0":
			nv = false
		default:
			return curated.Errorf("not a boolean: %v", v)
		}
	default:
		return curated.Errorf("cannot convert %T to config.Bool", v)
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		err := p.hookPost(nv)
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw option value.
func (p *Bool) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return false
	}
	return ov.(bool)
}

// SetHookPost sets the callback function to be called just after the option
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (p *Bool) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// String implements a string option. An optional list of allowed values
// turns the option into an enumeration.
type String struct {
	value    atomic.Value // string
	allowed  []string
	hookPost func(value Value) error
}

func (p *String) String() string {
	ov := p.value.Load()
	if ov == nil {
		return ""
	}
	return ov.(string)
}

// SetAllowed restricts the values the option will accept. Comparison with an
// allowed value is case insensitive and the stored value takes the case of
// the allowed form.
func (p *String) SetAllowed(values ...string) {
	p.allowed = values
}

// Set new value to String type. New value must be of type string.
func (p *String) Set(v Value) error {
	nv := fmt.Sprintf("%s", v)

	if len(p.allowed) > 0 {
		matched := false
		for _, a := range p.allowed {
			if strings.EqualFold(nv, a) {
				nv = a
				matched = true
				break
			}
		}
		if !matched {
			return curated.Errorf("not one of %s: %v", strings.Join(p.allowed, "|"), nv)
		}
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		err := p.hookPost(nv)
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw option value.
func (p *String) Get() Value {
	return p.String()
}

// SetHookPost sets the callback function to be called just after the option
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (p *String) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Int implements an integer option with an optional range restriction.
type Int struct {
	value    atomic.Value // int
	min      int
	max      int
	ranged   bool
	hookPost func(value Value) error
}

func (p *Int) String() string {
	ov := p.value.Load()
	if ov == nil {
		return "0"
	}
	return fmt.Sprintf("%d", ov.(int))
}

// SetRange restricts the values the option will accept to min and max
// inclusive.
func (p *Int) SetRange(min int, max int) {
	p.min = min
	p.max = max
	p.ranged = true
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int64:
		nv = int(v)
	case int32:
		nv = int(v)
	case int:
		nv = v
	case string:
		var err error
		nv, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return curated.Errorf("not a number: %v", v)
		}
	default:
		return curated.Errorf("cannot convert %T to config.Int", v)
	}

	if p.ranged && (nv < p.min || nv > p.max) {
		return curated.Errorf("%d is outside of the range %d to %d", nv, p.min, p.max)
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		err := p.hookPost(nv)
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw option value.
func (p *Int) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return 0
	}
	return ov.(int)
}

// SetHookPost sets the callback function to be called just after the option
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (p *Int) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}
