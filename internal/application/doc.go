// Package application wires resolved site settings into the read-only settings
// API: handler, router middleware and HTTP server. It keeps the main package
// focused on CLI parsing and orchestration.
package application
