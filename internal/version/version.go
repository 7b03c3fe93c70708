// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Desktop window renderer, theme file watching, config file and env overrides
// 0.2.0 - Offset trajectory policy, headless snapshot command
// 0.1.0 - Initial release: terminal star field, shooting stars, theme toggle
