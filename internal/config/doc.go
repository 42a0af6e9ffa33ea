// Package config resolves the site settings consumed by the static-site
// renderer. Resolve merges compiled-in defaults with an environment snapshot;
// Load layers an optional YAML settings file and CLI flags on top with
// precedence: CLI flags > Environment variables > YAML config > Defaults.
// The resulting SiteSettings value is immutable.
package config
