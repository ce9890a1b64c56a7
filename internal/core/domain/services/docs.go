// Package services contains stateless domain services: business rules that
// span aggregates and therefore do not belong to any single one of them.
package services
