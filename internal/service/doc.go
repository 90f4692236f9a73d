// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Service methods return sentinel errors for expected error conditions;
// unexpected errors are wrapped in service-specific error types. Callers use
// errors.Is/errors.As to check for specific conditions, and the API layer
// maps service errors to appropriate HTTP status codes.
//
// The service layer depends on domain entities and repository interfaces,
// but never on specific infrastructure implementations.
package service
