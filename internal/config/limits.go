package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 50 to fit in VARCHAR(50) and keep tree labels short.
	MaxFolderNameLength = 50

	// MaxNoteTitleLength is the maximum length for note titles.
	// Limited to 200 to fit in VARCHAR(200).
	MaxNoteTitleLength = 200
)
