// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/lrcsync/internal/lrclib"
	"github.com/llehouerou/lrcsync/internal/lyrics"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Editing
	OpSyncLine   Op = "sync line"
	OpAddLine    Op = "add line"
	OpRemoveLine Op = "remove line"
	OpEditText   Op = "edit line"
	OpMoveCursor Op = "move cursor"

	// Lyrics I/O
	OpLyricsLoad  Op = "load lyrics"
	OpLyricsSave  Op = "save lyrics"
	OpLyricsParse Op = "parse lyrics file"
	OpLyricsFetch Op = "fetch lyrics"
	OpTagsRead    Op = "read file tags"

	// Playback
	OpPlaybackConnect Op = "connect to player"
	OpPlaybackToggle  Op = "toggle playback"
	OpPlaybackSeek    Op = "seek"

	// Drafts
	OpDraftsList   Op = "list drafts"
	OpDraftsDelete Op = "delete draft"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpDBOpen     Op = "open draft database"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, describe(err))
}

// describe shortens well-known errors.
func describe(err error) string {
	switch {
	case errors.Is(err, lyrics.ErrIndexOutOfRange):
		return "no such line"
	case errors.Is(err, lyrics.ErrInvalidTimestamp):
		return "invalid timestamp"
	case errors.Is(err, lrclib.ErrNotFound):
		return "no lyrics found"
	}
	return err.Error()
}
