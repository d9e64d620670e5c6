// Package auth provides password-based user registration and authentication
// on top of a pluggable Storage.
//
// Authentication failures are deliberately uniform: an unknown email and a
// wrong password both return ErrInvalidCredentials, preventing account
// enumeration through differing responses or error shapes.
package auth
