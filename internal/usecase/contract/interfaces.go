package usecasecontract

// IAppLogger is the logging surface used by usecases.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// IConfigProvider exposes the settings usecases depend on.
type IConfigProvider interface {
	GetPlayerIDPrefix() string
	GetUserIDMaxAttempts() int
}

// IValidator checks registration input.
type IValidator interface {
	ValidateEmail(email string) error
	// ValidateRegistration returns *entity.MissingFieldError when required fields are
	// absent, otherwise *entity.SchemaValidationError for rule failures, or nil.
	ValidateRegistration(input *RegisterPlayerInput) error
}

// IMetrics records domain events for monitoring.
type IMetrics interface {
	ObserveRegistration(outcome string)
	ObserveSequenceAllocation()
}
