package model

import "time"

// Notice represents a published announcement as stored in the
// `notices` table. The `date` column is kept as the operator-entered
// string (e.g. "2024-01-02") rather than a DATETIME because clients
// filter on it by exact string equality; CreatedAt is the
// server-assigned timestamp used for "new since last visit"
// partitioning on the client side.
//
// Fields:
//  ID          – primary key identifier of the notice.
//  Title       – headline shown in lists and banners.
//  Description – full body text.
//  Category    – category name (e.g. general, academic, events).
//  Date        – operator-entered date string.
//  Urgent      – whether the notice rotates through the urgent banner.
//  File        – optional attachment reference (empty when absent).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Notice struct {
	ID          uint64    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Date        string    `json:"date" db:"date"`
	Urgent      bool      `json:"urgent" db:"urgent"`
	File        string    `json:"file,omitempty" db:"file"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Category represents a row in the `categories` table. Categories are
// managed by administrators but membership is not enforced when a
// notice is created; the list drives client-side filter dropdowns.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
