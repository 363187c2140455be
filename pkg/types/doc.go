// Package types defines the storage configuration, the stored slot entities
// and the standard errors shared by the xgrid storage backend and CLI.
package types
