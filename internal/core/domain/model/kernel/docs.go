// Package kernel provides the value objects shared by every stockway
// aggregate: identifiers (UUID), geographic points (GeoPoint) and the user
// roles recognised by the marketplace (Role).
//
// All kernel values are immutable. Their zero values are invalid and fail
// Validate, so aggregates can tell a missing value from a constructed one.
package kernel
