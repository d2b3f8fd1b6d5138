package config

import "time"

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxBookmarkTitleLength is the maximum length for bookmark titles.
	// Same as folder names for consistency.
	MaxBookmarkTitleLength = 255

	// MaxNoteTitleLength is the maximum length for note titles.
	MaxNoteTitleLength = 255

	// MaxPageTextLength caps the extracted page text sent to the
	// summarizer. The popup's content script applies the same cap.
	MaxPageTextLength = 10000

	// StoreCallTimeout bounds every individual store-gateway call.
	// A timed-out call surfaces as a StoreError; it is never retried
	// automatically.
	StoreCallTimeout = 10 * time.Second
)
