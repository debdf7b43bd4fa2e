package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

type GroupInput struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Slug        string `json:"slug" validate:"required,max=100,slug"`
	Description string `json:"description"`
}

type GroupService interface {
	Create(ctx context.Context, in GroupInput) (*model.Group, error)
	List(ctx context.Context) ([]*model.Group, error)
}

type groupService struct {
	groups repository.GroupRepository
}

func NewGroupService(groups repository.GroupRepository) GroupService {
	return &groupService{groups: groups}
}

func (s *groupService) Create(ctx context.Context, in GroupInput) (*model.Group, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	_, err := s.groups.GetBySlug(ctx, in.Slug)
	switch {
	case err == nil:
		return nil, invalid("slug already in use")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	group := &model.Group{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		// 并发创建时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("slug already in use")
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) List(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	return groups, nil
}
