// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package utils

// BoolP returns a pointer to the given bool value.
// Usage:
//
//	ptr := utils.BoolP(true) // *bool pointing to true
func BoolP(val bool) *bool {
	return &val
}

// PBool returns the value of a *bool pointer, or false if the pointer is nil.
// Usage:
//
//	val := utils.PBool(ptr) // returns value pointed by ptr, or false if ptr is nil
func PBool(ptr *bool) bool {
	var val bool
	if ptr != nil {
		val = *ptr
	}
	return val
}

// StringP returns a pointer to the given string value.
// Usage:
//
//	ptr := utils.StringP("hello") // *string pointing to "hello"
func StringP(val string) *string {
	return &val
}

// PString returns the value of a *string pointer, or "" if the pointer is nil.
// Usage:
//
//	val := utils.PString(ptr) // returns value pointed by ptr, or "" if ptr is nil
func PString(ptr *string) string {
	var val string
	if ptr != nil {
		val = *ptr
	}
	return val
}

// Int64P returns a pointer to the given int64 value.
// Usage:
//
//	ptr := utils.Int64P(42) // *int64 pointing to 42
func Int64P(val int64) *int64 {
	return &val
}

// PInt64 returns the value of a *int64 pointer, or 0 if the pointer is nil.
// Usage:
//
//	val := utils.PInt64(ptr) // returns value pointed by ptr, or 0 if ptr is nil
func PInt64(ptr *int64) int64 {
	var val int64
	if ptr != nil {
		val = *ptr
	}
	return val
}
