// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, JSON
// response writing and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// DeviceIDCtxKey is the key used to store the device identifier in the
// context. Used together with GetDeviceIDFromContext for type-safe
// retrieval of the device ID from context.Context.
var DeviceIDCtxKey = contextKey("deviceID")

// UserIDCtxKey is the key used to store the user identifier in the context.
// Used together with GetUserIDFromContext for type-safe retrieval
// of the user ID from context.Context.
var UserIDCtxKey = contextKey("userID")

// WithDeviceID returns a context carrying the device and user identifiers
// of the authenticated exchange.
func WithDeviceID(ctx context.Context, deviceID, userID string) context.Context {
	ctx = context.WithValue(ctx, DeviceIDCtxKey, deviceID)
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetDeviceIDFromContext retrieves the device identifier from the context.
//
// Returns the device ID and an ok flag:
//   - ok == true: value is found and has the correct string type
//   - ok == false: value is missing or has an unexpected type
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok
}

// GetUserIDFromContext retrieves the user identifier from the context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
