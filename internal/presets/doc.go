// Package presets provides named bundles of comment style and injection
// templates.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - presets compiled into the binary
//	    ├── FilesystemLoader  - presets from a directory on disk
//	    └── Resolver          - custom directory first, embedded fallback
//
// Resolver falls back to the embedded presets only when the custom directory
// does not contain the preset. Validation and I/O errors are returned as is.
//
// # Directory Structure
//
//	{basePath}/
//	├── {name}.yaml
//	└── {name}.yml
//
// A preset file holds:
//
//	description: ES module scripts
//	type: html
//	commentStyle: ""
//	injectionTemplates:
//	  js: '<script type="module" src="{file}"></script>'
//
// # Security
//
// Preset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package presets
