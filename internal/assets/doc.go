// Package assets provides the LaTeX preamble template, listings styles and the
// default configuration file shipped with simtex.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a user can override a single listings style or the preamble
// template while keeping the rest of the defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── listings/
//	│   └── {name}.tex           # \lstset styles (e.g., minimal.tex)
//	└── templates/
//	    └── preamble.tex         # text/template with << >> delimiters
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
