package category

import (
	"time"

	"github.com/google/uuid"
)

// Category entity - hierarchical qua parent_id (nullable, self reference)
type Category struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Slug        string     `db:"slug" json:"slug"`
	Description *string    `db:"description" json:"description,omitempty"`
	ParentID    *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Node là category kèm children - dùng cho tree endpoint
type Node struct {
	Category
	Children []*Node `json:"children"`
}

// BuildTree dựng forest từ flat list. Node có parent_id không tồn tại
// trong list (dangling) được coi là root thay vì bị drop.
func BuildTree(categories []Category) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &Node{
			Category: categories[i],
			Children: []*Node{},
		}
	}

	roots := make([]*Node, 0)
	for i := range categories {
		node := nodes[categories[i].ID]
		if categories[i].ParentID != nil {
			if parent, ok := nodes[*categories[i].ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}
