package texscript

import "embed"

// EmbeddedPresets holds the filter-script presets shipped with the binary.
//
//go:embed presets/*.mlx
var EmbeddedPresets embed.FS
