package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidVersion is returned when a version string does not follow the conda version grammar.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidConstraint is returned when a version constraint cannot be parsed.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrInvalidMatchSpec is returned when a dependency entry cannot be split into name, version and build.
	ErrInvalidMatchSpec = zerr.New("invalid dependency entry")

	// ErrDescriptorNotFound is returned when no environment descriptor can be found.
	ErrDescriptorNotFound = zerr.New("could not find environment.yml or environment.yaml")

	// ErrDescriptorReadFailed is returned when the descriptor file cannot be read.
	ErrDescriptorReadFailed = zerr.New("failed to read environment descriptor")

	// ErrDescriptorParseFailed is returned when the descriptor is not a well-formed mapping.
	ErrDescriptorParseFailed = zerr.New("failed to parse environment descriptor")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrInvalidSeverity is returned when a severity name is not one of error, warning or info.
	ErrInvalidSeverity = zerr.New("invalid severity, expected 'error', 'warning' or 'info'")

	// ErrUnknownRule is returned when settings reference a rule that does not exist.
	ErrUnknownRule = zerr.New("unknown rule")

	// ErrPackageNotInDescriptor is returned when a requested package is not declared.
	ErrPackageNotInDescriptor = zerr.New("package not declared in descriptor")

	// ErrCheckFailed is returned when a report contains error findings.
	ErrCheckFailed = zerr.New("environment descriptor check failed")

	// ErrUnknownFormat is returned when an unsupported report format is requested.
	ErrUnknownFormat = zerr.New("unknown report format, expected 'text' or 'json'")

	// ErrStoreCreateFailed is returned when the report store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create report store directory")

	// ErrStoreReadFailed is returned when a stored report cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored report")

	// ErrStoreUnmarshalFailed is returned when a stored report cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal stored report")

	// ErrStoreMarshalFailed is returned when a report cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal report")

	// ErrStoreWriteFailed is returned when a report cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write report")

	// ErrIndexCacheCreateFailed is returned when the channel index cache directory cannot be created.
	ErrIndexCacheCreateFailed = zerr.New("failed to create channel index cache directory")

	// ErrIndexCacheReadFailed is returned when reading from the channel index cache fails.
	ErrIndexCacheReadFailed = zerr.New("failed to read from channel index cache")

	// ErrIndexCacheWriteFailed is returned when writing to the channel index cache fails.
	ErrIndexCacheWriteFailed = zerr.New("failed to write to channel index cache")

	// ErrIndexRequestFailed is returned when a channel index request fails.
	ErrIndexRequestFailed = zerr.New("failed to query channel index")

	// ErrIndexParseFailed is returned when a channel index response cannot be parsed.
	ErrIndexParseFailed = zerr.New("failed to parse channel index response")

	// ErrPackageNotFound is returned when a package does not exist on a channel.
	ErrPackageNotFound = zerr.New("package not found on channel")

	// ErrWatcherFailed is returned when the descriptor cannot be watched.
	ErrWatcherFailed = zerr.New("failed to watch environment descriptor")

	// ErrDescriptorRemoved is reported while a watched descriptor is missing.
	ErrDescriptorRemoved = zerr.New("environment descriptor was removed")

	// ErrUnknownUIMode is returned when an unsupported watch display mode is requested.
	ErrUnknownUIMode = zerr.New("unknown display mode, expected 'auto', 'dashboard' or 'plain'")

	// ErrDashboardFailed is returned when the interactive dashboard stops unexpectedly.
	ErrDashboardFailed = zerr.New("dashboard failed")
)
