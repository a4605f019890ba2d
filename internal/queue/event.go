// Package queue defines message payloads exchanged over the message broker.
package queue

// NoticePublishedEvent is published when an administrator creates a
// notice. It carries enough information for downstream consumers to
// log, archive, or trigger out-of-band alerts without querying the
// primary database.
type NoticePublishedEvent struct {
	NoticeID    uint64 `json:"notice_id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Urgent      bool   `json:"urgent"`
	PublishedAt string `json:"published_at"`
}
