// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package image implements the content-addressed image pipeline: parsing
and validating an uploaded blob, storing it under a hash-derived path,
deduplicating by filename, reference counting, and the moderation queue
an upload sits in before an entity is allowed to link it.

# Architecture

  - Parser: validates and (optionally) transcodes raw upload bytes,
    external to this package so the concrete image library is swappable.
  - FileStorage: writes/removes the resulting blob, external for the same
    reason (local disk in development, object storage in production).
  - Service: orchestrates parse -> hash -> dedupe-by-filename -> store ->
    register reference, and the reverse (decrement a reference, garbage
    collect the Image row once unreferenced).
  - Queue: the Approve/Reject/Cancel/Revert moderation workflow an
    uploaded image sits in before its reference is trusted.

This mirrors internal/correction's split between orchestration and a
per-concern Store, but images have no history/reapply protocol of their
own: a blob is immutable once hashed, so there is nothing to reapply.
*/
package image

import "time"

// Status is the lifecycle state of a [Queue] entry.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusReverted  Status = "reverted"
)

// Image is one content-addressed blob. Two uploads that hash to the same
// filename are deduplicated to the same row.
type Image struct {
	ID        string    `json:"id"`
	Hash      string    `json:"hash"`
	Filename  string    `json:"filename"`
	Extension string    `json:"extension"`
	CreatedAt time.Time `json:"created_at"`
}

// Directory is the two-level hash-prefix path segment an [Image]'s blob
// is stored under (e.g. "ab/cd" for a hash starting "abcd..."), keeping
// any single filesystem directory from accumulating too many entries.
func (img Image) Directory() string {
	if len(img.Hash) < 4 {
		return img.Hash
	}
	return img.Hash[0:2] + "/" + img.Hash[2:4]
}

// Path is the full storage-relative path: Directory()/Filename.
func (img Image) Path() string {
	return img.Directory() + "/" + img.Filename
}

// Reference is one entity's use of an [Image], tagged with how
// (avatar, banner, cover, ...). An entity materializer writes these
// directly once it has an approved image id in hand; this package only
// creates the first reference at upload time and removes references on
// [Service.DecrementReference].
type Reference struct {
	ID         string    `json:"id"`
	ImageID    string    `json:"image_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Usage      string    `json:"usage"`
	CreatedAt  time.Time `json:"created_at"`
}

// Queue is a submitted image awaiting (or having received) moderation.
// It is distinct from [Reference]: an image can be queued for review
// before any entity is allowed to reference it, and [Status] tracks that
// review outcome independently of whether a reference row exists.
type Queue struct {
	ID         string     `json:"id"`
	ImageID    string     `json:"image_id"`
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Usage      string     `json:"usage"`
	Status     Status     `json:"status"`
	UploaderID string     `json:"uploader_id"`
	CreatedAt  time.Time  `json:"created_at"`
	HandledAt  *time.Time `json:"handled_at,omitempty"`
	HandledBy  *string    `json:"handled_by,omitempty"`
	RevertedAt *time.Time `json:"reverted_at,omitempty"`
	RevertedBy *string    `json:"reverted_by,omitempty"`
}

// IsPending reports whether q is still awaiting a first decision.
func (q *Queue) IsPending() bool { return q.Status == StatusPending }

// IsApproved reports whether q was approved and not yet reverted.
func (q *Queue) IsApproved() bool { return q.Status == StatusApproved }

// CreateMeta describes the context a new upload is being created for.
type CreateMeta struct {
	EntityType string
	EntityID   string
	Usage      string
	UploaderID string
}

// # Field Identifiers

const (
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldUsage      = "usage"
)
