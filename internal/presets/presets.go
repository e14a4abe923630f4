package presets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// Load loads an embedded preset by name.
func Load(name string) (*Preset, error) {
	return defaultLoader.Load(name)
}

// List returns the embedded preset names.
func List() ([]string, error) {
	return defaultLoader.List()
}
