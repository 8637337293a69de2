package schema

// ImageTable represents the content-addressed 'media.image' table.
type ImageTable struct {
	Table     string
	ID        string
	Hash      string
	Filename  string
	Extension string
	CreatedAt string
}

var Image = ImageTable{
	Table:     "media.image",
	ID:        "id",
	Hash:      "hash",
	Filename:  "filename",
	Extension: "extension",
	CreatedAt: "created_at",
}

func (t ImageTable) Columns() []string {
	return []string{t.ID, t.Hash, t.Filename, t.Extension, t.CreatedAt}
}

// ImageReferenceTable represents 'media.image_reference': one row per
// entity that uses an image, tagged with how it is used. Every entity
// materializer that has image children writes directly into this table
// (for image children, reapply does not touch the image blob).
type ImageReferenceTable struct {
	Table      string
	ID         string
	ImageID    string
	EntityType string
	EntityID   string
	Usage      string
	CreatedAt  string
}

var ImageReference = ImageReferenceTable{
	Table:      "media.image_reference",
	ID:         "id",
	ImageID:    "image_id",
	EntityType: "entity_type",
	EntityID:   "entity_id",
	Usage:      "usage",
	CreatedAt:  "created_at",
}

func (t ImageReferenceTable) Columns() []string {
	return []string{t.ID, t.ImageID, t.EntityType, t.EntityID, t.Usage, t.CreatedAt}
}

// ImageQueueTable represents 'media.image_queue': the review workflow for
// a submitted image before/alongside its reference being attached.
type ImageQueueTable struct {
	Table       string
	ID          string
	ImageID     string
	EntityType  string
	EntityID    string
	Usage       string
	Status      string
	UploaderID  string
	CreatedAt   string
	HandledAt   string
	HandledBy   string
	RevertedAt  string
	RevertedBy  string
}

var ImageQueue = ImageQueueTable{
	Table:      "media.image_queue",
	ID:         "id",
	ImageID:    "image_id",
	EntityType: "entity_type",
	EntityID:   "entity_id",
	Usage:      "usage",
	Status:     "status",
	UploaderID: "uploader_id",
	CreatedAt:  "created_at",
	HandledAt:  "handled_at",
	HandledBy:  "handled_by",
	RevertedAt: "reverted_at",
	RevertedBy: "reverted_by",
}

func (t ImageQueueTable) Columns() []string {
	return []string{
		t.ID, t.ImageID, t.EntityType, t.EntityID, t.Usage, t.Status,
		t.UploaderID, t.CreatedAt, t.HandledAt, t.HandledBy, t.RevertedAt, t.RevertedBy,
	}
}
