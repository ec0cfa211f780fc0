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

package environment

import (
	"github.com/jetsetilly/gopher80/config"
	"github.com/jetsetilly/gopher80/notifications"
)

// Label is used to name the environment
type Label string

// Environment is used to provide context for an emulation. Particularly
// useful when there is more than one machine instance in the process, as
// with the preview instance used by some tape operations.
type Environment struct {
	Label Label

	// the configuration store. all hardware settings are read through this
	Config *config.Store

	// the machine sends notifications to the emulation loop through this
	// hook
	Notify notifications.Notify
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The config argument can be nil, in which case a new Store is created.
// Providing a non-nil value allows the configuration of more than one
// machine instance to be synchronised.
//
// The notify argument can be nil, in which case notifications are silently
// dropped.
func NewEnvironment(label Label, cfg *config.Store, notify notifications.Notify) (*Environment, error) {
	env := &Environment{
		Label:  label,
		Notify: notify,
	}

	var err error

	if cfg == nil {
		cfg, err = config.NewStore()
		if err != nil {
			return nil, err
		}
	}
	env.Config = cfg

	if notify == nil {
		env.Notify = stubNotify{}
	}

	return env, nil
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system
func (env *Environment) IsMainEmulation() bool {
	return env.Label == ""
}

// IsEmulation checks the emulation label and returns true if it matches
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation writes to the central logger; secondary instances stay quiet.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}

// stubNotify swallows notifications when no receiver has been attached.
type stubNotify struct{}

func (_ stubNotify) Notify(_ notifications.Notice) error {
	return nil
}
