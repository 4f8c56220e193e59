package comment

import (
	"time"

	"github.com/google/uuid"
)

// Status enum - moderation state machine.
// pending là initial; approve/reject/spam là exits duy nhất, không có
// đường quay lại pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusSpam     Status = "spam"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSpam:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Comment entity. UserID nil = guest comment (cần AuthorName+AuthorEmail).
// ParentID tạo reply chain sâu tùy ý.
type Comment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	ArticleID   uuid.UUID  `db:"article_id" json:"article_id"`
	UserID      *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	ParentID    *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
	Content     string     `db:"content" json:"content"`
	AuthorName  *string    `db:"author_name" json:"author_name,omitempty"`
	AuthorEmail *string    `db:"author_email" json:"-"` // không expose email ra public
	Status      Status     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	// Joined - tên user đăng ký (nil với guest)
	UserName *string `db:"user_name" json:"user_name,omitempty"`

	// Replies nested, populate ở public listing
	Replies []*Comment `json:"replies,omitempty"`
}

// DisplayName: tên hiển thị - user đăng ký ưu tiên tên account
func (c *Comment) DisplayName() string {
	if c.UserName != nil && *c.UserName != "" {
		return *c.UserName
	}
	if c.AuthorName != nil {
		return *c.AuthorName
	}
	return "Anonymous"
}

// IsGuest - comment không gắn với account
func (c *Comment) IsGuest() bool {
	return c.UserID == nil
}

// BuildThread dựng reply tree từ flat list (đã filter status từ query).
// Comment có parent không nằm trong list bị drop - parent không
// approved thì nhánh con không hiển thị.
func BuildThread(comments []Comment) []*Comment {
	nodes := make(map[uuid.UUID]*Comment, len(comments))
	for i := range comments {
		c := comments[i]
		c.Replies = []*Comment{}
		nodes[c.ID] = &c
	}

	roots := make([]*Comment, 0)
	for i := range comments {
		node := nodes[comments[i].ID]
		if comments[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*comments[i].ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return roots
}
