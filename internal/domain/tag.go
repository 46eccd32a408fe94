package domain

// Tag Model
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`        // Primary key
	Name string `gorm:"unique;not null" json:"name"` // Unique tag label
}

// ReferendumTag Model: many-to-many join row between referendums and tags,
// unique per pair via the composite primary key.
type ReferendumTag struct {
	ReferendumID uint `gorm:"primaryKey" json:"referendum_id"` // Foreign key to Referendum
	TagID        uint `gorm:"primaryKey" json:"tag_id"`        // Foreign key to Tag
}
