// Package types defines the warehouse record kinds (Model, ModelMeta,
// Project), the generic field-access layer with its static/dynamic field
// discipline, the store configuration, and the standard error values shared
// across the system.
package types
