package entity

import "time"

// ContentType identifies the kind of content a DeleteHistory refers to.
type ContentType string

const (
	ContentTypeQuestion ContentType = "QUESTION"
	ContentTypeAnswer   ContentType = "ANSWER"
)

// IsValid checks if the content type is one of the known kinds.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeQuestion, ContentTypeAnswer:
		return true
	default:
		return false
	}
}

// String returns the string representation of the content type.
func (c ContentType) String() string {
	return string(c)
}

// DeleteHistory is an audit record written once for every soft-deleted entity.
// ID is zero until the record has been persisted.
type DeleteHistory struct {
	ID          int64
	ContentType ContentType
	ContentID   int64
	DeletedBy   User
	CreatedDate time.Time
}

// NewDeleteHistory creates an unpersisted history record.
func NewDeleteHistory(contentType ContentType, contentID int64, deletedBy User, at time.Time) DeleteHistory {
	return DeleteHistory{
		ContentType: contentType,
		ContentID:   contentID,
		DeletedBy:   deletedBy,
		CreatedDate: at,
	}
}

// Matches compares two records ignoring ID and timestamp.
func (h DeleteHistory) Matches(other DeleteHistory) bool {
	return h.ContentType == other.ContentType &&
		h.ContentID == other.ContentID &&
		h.DeletedBy.Equals(other.DeletedBy)
}
