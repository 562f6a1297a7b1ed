//go:build tools

package tools

// CLI tool dependencies are tracked with the go.mod tool directive.
// Run them through the toolchain, e.g.:
//
//	go tool goose -dir migrations postgres "$DATABASE_DSN" status
