// Package kernel contains shared value objects used across the domain model.
// These are small immutable types with validation enforced by constructor
// functions; the zero value of each type is invalid.
package kernel
