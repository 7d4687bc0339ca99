// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of lines to keep visible above/below the cursor.
	ScrollMargin = 3

	// HeaderHeight is the space for the title line and its separator.
	HeaderHeight = 2

	// FooterHeight is the space for the status line and the key hints.
	FooterHeight = 2
)
