package ports

import "go.trai.ch/envspec/internal/core/domain"

// DescriptorLoader defines the interface for locating and reading environment descriptors.
//
//go:generate go run go.uber.org/mock/mockgen -source=descriptor_loader.go -destination=mocks/mock_descriptor_loader.go -package=mocks
type DescriptorLoader interface {
	// Discover walks upward from cwd and returns the path of the nearest descriptor.
	Discover(cwd string) (string, error)

	// Load reads and parses the descriptor at path.
	// Parse and entry-level problems are recorded on the descriptor; only
	// read failures are returned.
	Load(path string) (*domain.Descriptor, error)
}

// SettingsLoader defines the interface for reading tool settings.
type SettingsLoader interface {
	// LoadSettings reads the settings that apply to descriptors in dir.
	// Missing settings files yield domain.DefaultSettings.
	LoadSettings(dir string) (domain.Settings, error)
}
