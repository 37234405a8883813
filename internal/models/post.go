package models

import "time"

// Post is a feed entry. User, Likes and Comments are stitched in by the
// resolvers and are not columns.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Likes     int       `gorm:"-" json:"likes"`
	Comments  int       `gorm:"-" json:"comments"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
