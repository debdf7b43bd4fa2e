package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/auth"
)

// 查重时看不到对方刚插入的行，模拟两个并发请求同时通过检查
type lateUsers struct{ repository.UserRepository }

func (lateUsers) GetByUsername(context.Context, string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type lateGroups struct{ repository.GroupRepository }

func (lateGroups) GetBySlug(context.Context, string) (*model.Group, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestUserService_SignUpUniqueIndexConflictIsValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	newUser(t, e, "stas")

	users := NewUserService(lateUsers{repository.NewUserRepository(e.db)}, auth.NewTokenManager("test", time.Hour))
	_, err := users.SignUp(ctx, SignUpInput{Username: "stas", Email: "stas@example.com", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGroupService_CreateUniqueIndexConflictIsValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	newGroup(t, e, "cats")

	groups := NewGroupService(lateGroups{repository.NewGroupRepository(e.db)})
	_, err := groups.Create(ctx, GroupInput{Title: "Cats", Slug: "cats"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
