// Package warehouse holds module-level metadata.
package warehouse

// Version is the warehouse release version.
const Version = "0.1.0"
