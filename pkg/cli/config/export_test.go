package config

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken string) *Slack {
	return &Slack{botToken: botToken}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, sqlitePath string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		sqlitePath: sqlitePath,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewAppForTest creates an App config for testing purposes
func NewAppForTest(path string) *App {
	return &App{path: path}
}
