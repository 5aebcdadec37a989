package service

import (
	"Foodnote/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_StateMachine(t *testing.T) {
	s := NewSelection()

	// 未进入选择模式时点选无效
	st := s.Tap("a")
	assert.False(t, st.Active)
	assert.Empty(t, st.Selected)

	st = s.Toggle()
	assert.True(t, st.Active)
	assert.Empty(t, st.Selected)

	s.Tap("b")
	st = s.Tap("a")
	assert.Equal(t, []string{"a", "b"}, st.Selected)

	st = s.Tap("a")
	assert.Equal(t, []string{"b"}, st.Selected)

	st = s.Toggle()
	assert.False(t, st.Active)
	assert.Empty(t, st.Selected)

	st = s.Toggle()
	assert.True(t, st.Active)
	assert.Empty(t, st.Selected)
}

func TestSelection_ConfirmDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	c := newTestCatalog(t, store)
	a, _ := c.CreatePhoto(ctx, []byte("a"))
	b, _ := c.CreatePhoto(ctx, []byte("b"))
	keep, _ := c.CreatePhoto(ctx, []byte("c"))

	svc := NewSelectionService(c)
	svc.Toggle("s1")
	svc.Tap("s1", a.ID)
	svc.Tap("s1", b.ID)

	resp := svc.ConfirmDelete(ctx, "s1")
	assert.ElementsMatch(t, []string{a.ID, b.ID}, resp.Deleted)
	assert.Empty(t, resp.Failed)

	photos, _ := c.Snapshot()
	assert.Equal(t, []string{keep.ID}, ids(photos))

	st := svc.State("s1")
	assert.False(t, st.Active)
	assert.Empty(t, st.Selected)
}

func TestSelection_ConfirmDeleteBestEffort(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	c := newTestCatalog(t, store)
	a, _ := c.CreatePhoto(ctx, []byte("a"))
	b, _ := c.CreatePhoto(ctx, []byte("b"))
	store.deleteErr[a.ID] = errBoom

	sel := NewSelection()
	sel.Toggle()
	sel.Tap(a.ID)
	sel.Tap(b.ID)
	sel.Tap("ghost")

	resp := sel.ConfirmDelete(ctx, c)
	assert.Equal(t, []string{b.ID}, resp.Deleted)
	require.Len(t, resp.Failed, 2)
	assert.Contains(t, resp.Failed, a.ID)
	assert.Contains(t, resp.Failed, "ghost")

	_, ok := c.Photo(a.ID)
	assert.True(t, ok)
	assert.Equal(t, types.SelectionState{Active: false, Selected: []string{}}, sel.State())
}

func TestSelectionService_SessionsAreIsolated(t *testing.T) {
	svc := NewSelectionService(newTestCatalog(t, newMemStore()))
	svc.Toggle("s1")
	svc.Tap("s1", "x")

	assert.False(t, svc.State("s2").Active)
	assert.Equal(t, []string{"x"}, svc.State("s1").Selected)
}
