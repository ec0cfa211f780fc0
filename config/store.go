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
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/memory/memorymap"
	"github.com/jetsetilly/gopher80/resources"

	"gopkg.in/ini.v1"
)

// sentinel errors for the config package
const (
	// InvalidValue is returned when a value in the config file fails
	// validation. The error carries the filename, the line number and the
	// name of the offending option.
	InvalidValue = "config: %v:%d: %v: %v"

	// UnknownKey is returned when an option name is not recognised.
	UnknownKey = "config: no such option: %v"
)

// the name of the INI file under the resources directory
const iniFile = "gopher80.ini"

// Store is the collection of every configurable option in the emulator,
// backed by an INI file on disk.
//
// Option values are read through the typed fields. Changes by name should go
// through the Set() function, which validates the new value and rewrites the
// file. Unrecognised keys and comments in the file are left untouched by a
// load/save cycle.
type Store struct {
	crit     sync.Mutex
	filename string
	ini      *ini.File

	// [General]
	Level1ROM  String
	Level2ROM  String
	MiscROM    String
	DefaultROM Int
	RAMSize    Size

	// [Keyboard]
	MsPerKeypress Int

	// [Video]
	WindowedResolution   Resolution
	FullscreenResolution Resolution
	BGColor              Color
	FGColor              Color
	DesktopFullscreen    Bool
	UseHWAccel           Bool
	UseVSync             Bool
	LowercaseMod         Bool
	CharacterGenerator   Int

	// [Cassette]
	CassetteFile       String
	CassetteFileFormat String
	CassetteFileOffset Int

	entries []*entry
	index   map[string]*entry
}

// entry ties an option to its place in the INI file and to the default used
// when the file has no value for it.
type entry struct {
	section string
	key     string
	opt     option
	def     string
}

// NewStore is the preferred method of initialisation for the Store type. The
// INI file is loaded immediately, with missing entries inserted and the file
// rewritten as required.
func NewStore() (*Store, error) {
	s := &Store{
		index: make(map[string]*entry),
	}

	s.DefaultROM.SetRange(1, 3)
	s.RAMSize.SetMax(memorymap.MaxRAM)
	s.MsPerKeypress.SetRange(1, 10000)
	s.CharacterGenerator.SetRange(1, 3)
	s.CassetteFileFormat.SetAllowed("CAS", "CPT")
	s.CassetteFileOffset.SetRange(0, math.MaxInt32)

	reg := []struct {
		section string
		key     string
		opt     option
		def     string
	}{
		{"General", "level_1_rom", &s.Level1ROM, "none"},
		{"General", "level_2_rom", &s.Level2ROM, "none"},
		{"General", "misc_rom", &s.MiscROM, "none"},
		{"General", "default_rom", &s.DefaultROM, "2"},
		{"General", "ram_size", &s.RAMSize, "16K"},
		{"Keyboard", "ms_per_keypress", &s.MsPerKeypress, "50"},
		{"Video", "windowed_resolution", &s.WindowedResolution, "640x480"},
		{"Video", "fullscreen_resolution", &s.FullscreenResolution, "640x480"},
		{"Video", "bg_color", &s.BGColor, "#000000"},
		{"Video", "fg_color", &s.FGColor, "#d0d0d0"},
		{"Video", "desktop_fullscreen_mode", &s.DesktopFullscreen, "true"},
		{"Video", "use_hw_accel", &s.UseHWAccel, "true"},
		{"Video", "use_vsync", &s.UseVSync, "true"},
		{"Video", "lowercase_mod", &s.LowercaseMod, "false"},
		{"Video", "character_generator", &s.CharacterGenerator, "1"},
		{"Cassette", "cassette_file", &s.CassetteFile, "none"},
		{"Cassette", "cassette_file_format", &s.CassetteFileFormat, "CAS"},
		{"Cassette", "cassette_file_offset", &s.CassetteFileOffset, "0"},
	}

	for _, r := range reg {
		if err := s.add(r.section, r.key, r.opt, r.def); err != nil {
			return nil, curated.Errorf("config: %v", err)
		}
	}

	var err error
	s.filename, err = resources.JoinPath(iniFile)
	if err != nil {
		return nil, curated.Errorf("config: %v", err)
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// add registers an option under its INI section and key and gives it its
// default value.
func (s *Store) add(section string, key string, opt option, def string) error {
	if _, ok := s.index[key]; ok {
		return curated.Errorf("duplicate option name: %v", key)
	}

	e := &entry{section: section, key: key, opt: opt, def: def}
	s.entries = append(s.entries, e)
	s.index[key] = e

	return opt.Set(def)
}

// Filename returns the path of the INI file backing the store.
func (s *Store) Filename() string {
	return s.filename
}

// Load reads the INI file into the store. A missing file is not an error; it
// is treated as a file with every entry missing. Missing entries are
// inserted with their default values and, if any insertion happened, the
// file is rewritten.
//
// Inline comment parsing is disabled so that color values of the #RRGGBB
// form survive. Whole-line comments are unaffected.
func (s *Store) Load() error {
	s.crit.Lock()
	defer s.crit.Unlock()

	fl, err := ini.LoadSources(ini.LoadOptions{
		Loose:               true,
		IgnoreInlineComment: true,
	}, s.filename)
	if err != nil {
		return curated.Errorf("config: %v: %v", s.filename, err)
	}
	s.ini = fl

	dirty := false
	for _, e := range s.entries {
		sec := fl.Section(e.section)

		if sec.HasKey(e.key) {
			if err := e.opt.Set(sec.Key(e.key).String()); err != nil {
				return curated.Errorf(InvalidValue, s.filename, lineOf(s.filename, e.key), e.key, err)
			}
			continue
		}

		if _, err := sec.NewKey(e.key, e.def); err != nil {
			return curated.Errorf("config: %v: %v", s.filename, err)
		}
		if err := e.opt.Set(e.def); err != nil {
			return curated.Errorf("config: %v: %v", s.filename, err)
		}
		dirty = true
	}

	if dirty {
		return s.save()
	}

	return nil
}

// Save rewrites the INI file from the store.
func (s *Store) Save() error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.save()
}

// save assumes the critical section is already held. The file is replaced
// wholesale, via a temporary file and a rename, so that a crash mid-write
// cannot leave a torn file behind.
func (s *Store) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.filename), "gopher80.*.ini")
	if err != nil {
		return curated.Errorf("config: %v", err)
	}

	if _, err := s.ini.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return curated.Errorf("config: %v", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return curated.Errorf("config: %v", err)
	}

	if err := os.Rename(tmp.Name(), s.filename); err != nil {
		_ = os.Remove(tmp.Name())
		return curated.Errorf("config: %v", err)
	}

	return nil
}

// Set validates the named option against the new value and rewrites the INI
// file. The value written is the canonical form of the supplied value. For
// example, a ram_size of "16384" is written as "16K".
func (s *Store) Set(key string, value string) error {
	s.crit.Lock()
	defer s.crit.Unlock()

	e, ok := s.index[key]
	if !ok {
		return curated.Errorf(UnknownKey, key)
	}

	if err := e.opt.Set(value); err != nil {
		return curated.Errorf("config: %v: %v", key, err)
	}

	s.ini.Section(e.section).Key(e.key).SetValue(e.opt.String())

	return s.save()
}

// Get returns the canonical string form of the named option.
func (s *Store) Get(key string) (string, error) {
	e, ok := s.index[key]
	if !ok {
		return "", curated.Errorf(UnknownKey, key)
	}
	return e.opt.String(), nil
}

// List returns every option grouped by INI section, one option per line.
func (s *Store) List() string {
	sb := strings.Builder{}

	section := ""
	for _, e := range s.entries {
		if e.section != section {
			if section != "" {
				sb.WriteString("\n")
			}
			section = e.section
			sb.WriteString(fmt.Sprintf("[%s]\n", section))
		}
		sb.WriteString(fmt.Sprintf("%s = %s\n", e.key, e.opt.String()))
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (s *Store) String() string {
	return s.List()
}

// lineOf finds the line number of a key in an INI file. Used to decorate
// validation errors. Returns zero if the key cannot be found.
func lineOf(filename string, key string) int {
	f, err := os.Open(filename)
	if err != nil {
		return 0
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
		t := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(t, ";") || strings.HasPrefix(t, "#") {
			continue
		}
		if i := strings.IndexRune(t, '='); i != -1 {
			if strings.TrimSpace(t[:i]) == key {
				return n
			}
		}
	}

	return 0
}
