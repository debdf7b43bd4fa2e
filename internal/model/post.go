package model

import "time"

// Post 帖子；GroupID 与 Image 可为空
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index:idx_post_author;not null"`
	GroupID   *string   `json:"group_id,omitempty" gorm:"type:varchar(36);index:idx_post_group"`
	Image     *string   `json:"image,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_created"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Group  *Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`
}

func (Post) TableName() string { return "posts" }
