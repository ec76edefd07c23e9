package config

const (
	// MinUsernameLength is the minimum accepted username length.
	MinUsernameLength = 3

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6

	// MinProjectNameLength is the minimum length for project names.
	MinProjectNameLength = 3

	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxProjectDescriptionLength caps project descriptions.
	MaxProjectDescriptionLength = 1000

	// MinTaskTitleLength is the minimum length for task titles.
	MinTaskTitleLength = 3

	// MaxTaskTitleLength is the maximum length for task titles.
	// Same bound as project names for consistency.
	MaxTaskTitleLength = 255

	// MaxTaskDescriptionLength caps task descriptions.
	MaxTaskDescriptionLength = 2000

	// MaxArchiveUploadBytes caps uploaded archive size (100MB).
	MaxArchiveUploadBytes = 100 << 20
)
