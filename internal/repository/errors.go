// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure scenarios
// without string-matching driver errors: ErrNoticeNotFound and
// ErrUserNotFound map to HTTP 404, ErrEmailExists and
// ErrCategoryExists to HTTP 409.
package repository

import "errors"

// ErrNoticeNotFound is returned when an update or delete targets a
// notice id that does not exist.
var ErrNoticeNotFound = errors.New("notice not found")

// ErrUserNotFound is returned when a lookup or role change targets an
// unknown user.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when a registration collides with an
// existing email or registration number.
var ErrEmailExists = errors.New("email already exists")

// ErrCategoryExists is returned when creating a category whose name is
// already taken.
var ErrCategoryExists = errors.New("category already exists")
