package main

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

/// OpenROMDialog asks the user for a ROM file. Returns false if the
/// dialog was cancelled or failed.
///
func OpenROMDialog(logger *log.Logger) (string, bool) {
	rom, err := dialog.File().
		Title("Load ROM").
		Filter("CHIP-8 ROMs", "ch8", "c8").
		Filter("All files", "*").
		Load()

	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			logger.Error("Opening ROM dialog failed", log.Err(err))
		}
		return "", false
	}

	return rom, true
}
