package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupService_CreateAndList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	groups, err := e.groups.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	g, err := e.groups.Create(ctx, GroupInput{Title: "Cats", Slug: "cats", Description: "meow"})
	require.NoError(t, err)
	assert.Equal(t, "cats", g.Slug)

	_, err = e.groups.Create(ctx, GroupInput{Title: "Cats again", Slug: "cats"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.groups.Create(ctx, GroupInput{Title: "Bad", Slug: "no spaces"})
	assert.ErrorIs(t, err, ErrValidation)

	groups, err = e.groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, g.ID, groups[0].ID)
}
