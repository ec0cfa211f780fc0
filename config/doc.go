// Package config holds every configurable option in the emulator and keeps
// them in step with an INI file on disk.
//
// Options are typed fields on the Store. Reading is through the field
// directly, for example:
//
//	size := store.RAMSize.Bytes()
//
// Changing an option by name goes through Store.Set(), which validates the
// new value, updates the typed field and rewrites the file. The file is
// replaced wholesale on every write but comments and unrecognised entries
// survive the rewrite, so a hand-edited file stays hand-edited.
//
// On the first load any missing entries are inserted with their documented
// defaults and the file is rewritten, meaning that the file is always a
// complete record of the current configuration.
package config
