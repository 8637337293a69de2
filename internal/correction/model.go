// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package correction implements the versioned correction engine that
mediates every change to a catalog entity (artists, releases, labels,
events, songs, song lyrics, tags, credit roles).

Every proposed change is stored as an immutable history snapshot. A
proposed creation writes the live entity at once; its correction is
recorded Approved when the author has a privileged role and Pending
otherwise. Proposed updates always sit Pending until a moderator approves
or rejects them.
Approval re-derives the live entity from the chosen history snapshot
through a delete-and-reinsert protocol, so the live row and all of its
child relations always match some revision that was actually proposed.

# Architecture

  - Engine[T]: lifecycle orchestration (propose/approve/reject),
    generic over the payload type of one entity kind.
  - Materializer[T]: the per-entity-kind capability set (validate,
    create_live, create_history, reapply) an Engine dispatches to.
  - Store: persistence for the Correction/CorrectionRevision/
    CorrectionUser tables, entity-kind agnostic.

This package never talks SQL directly for entity data — only for its own
three lifecycle tables — delegating all entity shape knowledge to the
injected [Materializer].
*/
package correction

import "time"

// # Domain Enums

// Status is the lifecycle state of a [Correction].
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Type distinguishes a brand-new entity proposal from a change to an
// existing one.
type Type string

const (
	TypeCreate Type = "create"
	TypeUpdate Type = "update"
)

// EntityType tags which catalog entity kind a [Correction] is about. It is
// fixed at creation and never changes for the lifetime of the correction.
type EntityType string

const (
	EntityArtist     EntityType = "artist"
	EntityRelease    EntityType = "release"
	EntityLabel      EntityType = "label"
	EntityEvent      EntityType = "event"
	EntitySong       EntityType = "song"
	EntitySongLyrics EntityType = "song_lyrics"
	EntityTag        EntityType = "tag"
	EntityCreditRole EntityType = "credit_role"
)

// UserType classifies a user's relationship to a [Correction] in the
// [CorrectionUser] join table.
type UserType string

const (
	UserTypeAuthor   UserType = "author"
	UserTypeApprover UserType = "approver"
	UserTypeRejecter UserType = "rejecter"
)

// # Core Entities

// Correction is a single, immutable proposal to create or update one
// entity. Its latest [CorrectionRevision] names the currently proposed
// state.
type Correction struct {
	ID         string     `json:"id"`
	Status     Status     `json:"status"`
	Type       Type       `json:"type"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	CreatedAt  time.Time  `json:"created_at"`
	HandledAt  *time.Time `json:"handled_at,omitempty"`
}

// IsPending reports whether the correction is awaiting review.
func (c *Correction) IsPending() bool { return c.Status == StatusPending }

// CorrectionRevision points a [Correction] at one history snapshot.
// Multiple revisions on the same correction model iterative edits made by
// authors before approval. Revisions are ordered by EntityHistoryID
// ascending; ties (which should not occur under a monotonic history id
// sequence) are broken by insertion order via Seq.
type CorrectionRevision struct {
	CorrectionID    string    `json:"correction_id"`
	EntityHistoryID string    `json:"entity_history_id"`
	AuthorID        string    `json:"author_id"`
	Description     string    `json:"description"`
	Seq             int64     `json:"-"` // insertion order, for tie-breaks only
	CreatedAt       time.Time `json:"created_at"`
}

// CorrectionUser records a user's relationship (author, approver,
// rejecter) to a correction, used to answer "is X the author of C".
type CorrectionUser struct {
	CorrectionID string   `json:"correction_id"`
	UserID       string   `json:"user_id"`
	UserType     UserType `json:"user_type"`
}

// # Field Identifiers

const (
	FieldStatus      = "status"
	FieldType        = "type"
	FieldEntityType  = "entity_type"
	FieldEntityID    = "entity_id"
	FieldDescription = "description"
)
