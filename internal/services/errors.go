// Package services implements the business logic for custom domains:
// claiming hostnames, proving ownership over DNS, merging edge-platform
// state, and guarding every operation by workspace membership. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; the
// handler layer translates them into HTTP statuses.
package services

import "errors"

var (
	// ErrAccessDenied indicates the acting user is not a workspace member,
	// or holds a role insufficient for the attempted operation. The same
	// error covers both cases so responses do not reveal which one applies.
	ErrAccessDenied = errors.New("access denied")

	// ErrDomainNotFound indicates the requested domain does not exist in the
	// given workspace. A domain owned by another workspace yields the same
	// error, never a hint that the record exists elsewhere.
	ErrDomainNotFound = errors.New("domain not found")

	// ErrDomainExists is returned when the hostname is already claimed
	// anywhere on the platform.
	ErrDomainExists = errors.New("domain already claimed")

	// ErrInvalidDomain is returned when the submitted hostname is not a
	// plausible DNS name.
	ErrInvalidDomain = errors.New("invalid domain name")
)
