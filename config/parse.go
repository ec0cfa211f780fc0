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

// Size implements a byte count option. The INI representation is a plain
// number of bytes or a number with a K suffix meaning multiples of 1024.
type Size struct {
	value    atomic.Value // int
	max      int
	hookPost func(value Value) error
}

func (p *Size) String() string {
	v := p.Bytes()
	if v > 0 && v%1024 == 0 {
		return fmt.Sprintf("%dK", v/1024)
	}
	return fmt.Sprintf("%d", v)
}

// SetMax restricts the byte counts the option will accept.
func (p *Size) SetMax(max int) {
	p.max = max
}

// Set new value to Size type. New value can be an int or a string with the
// optional K suffix.
func (p *Size) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int:
		nv = v
	case string:
		s := strings.TrimSpace(v)
		mult := 1
		if strings.HasSuffix(strings.ToUpper(s), "K") {
			mult = 1024
			s = s[:len(s)-1]
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return curated.Errorf("not a size: %v", v)
		}
		nv = n * mult
	default:
		return curated.Errorf("cannot convert %T to config.Size", v)
	}

	if nv < 0 {
		return curated.Errorf("size cannot be negative: %d", nv)
	}
	if p.max > 0 && nv > p.max {
		return curated.Errorf("size %d is larger than the maximum of %d", nv, p.max)
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
func (p *Size) Get() Value {
	return p.Bytes()
}

// Bytes returns the size as a number of bytes.
func (p *Size) Bytes() int {
	ov := p.value.Load()
	if ov == nil {
		return 0
	}
	return ov.(int)
}

// SetHookPost sets the callback function to be called just after the option
// value is updated.
func (p *Size) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Resolution implements a display resolution option. The INI representation
// is WxH, eg. 640x480.
type Resolution struct {
	value    atomic.Value // [2]int
	hookPost func(value Value) error
}

func (p *Resolution) String() string {
	w, h := p.Size()
	return fmt.Sprintf("%dx%d", w, h)
}

// Set new value to Resolution type. New value must be a string of the WxH
// form.
func (p *Resolution) Set(v Value) error {
	s, ok := v.(string)
	if !ok {
		return curated.Errorf("cannot convert %T to config.Resolution", v)
	}

	d := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(d) != 2 {
		return curated.Errorf("not a resolution: %v", v)
	}

	w, errw := strconv.Atoi(d[0])
	h, errh := strconv.Atoi(d[1])
	if errw != nil || errh != nil || w <= 0 || h <= 0 {
		return curated.Errorf("not a resolution: %v", v)
	}

	p.value.Store([2]int{w, h})

	if p.hookPost != nil {
		err := p.hookPost([2]int{w, h})
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw option value.
func (p *Resolution) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return [2]int{0, 0}
	}
	return ov.([2]int)
}

// Size returns the width and height of the resolution.
func (p *Resolution) Size() (int, int) {
	d := p.Get().([2]int)
	return d[0], d[1]
}

// SetHookPost sets the callback function to be called just after the option
// value is updated.
func (p *Resolution) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Color implements an RGB color option. The INI representation is #RRGGBB.
type Color struct {
	value    atomic.Value // [3]uint8
	hookPost func(value Value) error
}

func (p *Color) String() string {
	r, g, b := p.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Set new value to Color type. New value must be a string of the #RRGGBB
// form.
func (p *Color) Set(v Value) error {
	s, ok := v.(string)
	if !ok {
		return curated.Errorf("cannot convert %T to config.Color", v)
	}

	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return curated.Errorf("not a color: %v", v)
	}

	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return curated.Errorf("not a color: %v", v)
	}

	rgb := [3]uint8{uint8(n >> 16), uint8(n >> 8), uint8(n)}
	p.value.Store(rgb)

	if p.hookPost != nil {
		err := p.hookPost(rgb)
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw option value.
func (p *Color) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return [3]uint8{0, 0, 0}
	}
	return ov.([3]uint8)
}

// RGB returns the three color components.
func (p *Color) RGB() (uint8, uint8, uint8) {
	rgb := p.Get().([3]uint8)
	return rgb[0], rgb[1], rgb[2]
}

// SetHookPost sets the callback function to be called just after the option
// value is updated.
func (p *Color) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}
