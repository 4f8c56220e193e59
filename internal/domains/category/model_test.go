package category

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	newsID := uuid.New()
	sportsID := uuid.New()
	footballID := uuid.New()

	categories := []Category{
		{ID: newsID, Name: "News", Slug: "news"},
		{ID: sportsID, Name: "Sports", Slug: "sports"},
		{ID: footballID, Name: "Football", Slug: "football", ParentID: &sportsID},
	}

	tree := BuildTree(categories)
	require.Len(t, tree, 2)

	byName := map[string]*Node{}
	for _, n := range tree {
		byName[n.Name] = n
	}

	assert.Empty(t, byName["News"].Children)
	require.Len(t, byName["Sports"].Children, 1)
	assert.Equal(t, footballID, byName["Sports"].Children[0].ID)
}

func TestBuildTreeDeepNesting(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	tree := BuildTree([]Category{
		{ID: a, Name: "A"},
		{ID: b, Name: "B", ParentID: &a},
		{ID: c, Name: "C", ParentID: &b},
	})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, c, tree[0].Children[0].Children[0].ID)
}

// Parent không nằm trong list -> node thành root, không bị drop
func TestBuildTreeDanglingParent(t *testing.T) {
	ghost := uuid.New()
	orphanID := uuid.New()

	tree := BuildTree([]Category{
		{ID: orphanID, Name: "Orphan", ParentID: &ghost},
	})

	require.Len(t, tree, 1)
	assert.Equal(t, orphanID, tree[0].ID)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}
