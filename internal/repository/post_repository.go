package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

// PostRepository 帖子仓储接口；每种 feed 一对 Count/List 查询，结果均按时间倒序
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// Update 覆盖 text / group_id / image
	Update(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)

	CountAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]*model.Post, error)

	CountByGroup(ctx context.Context, groupID string) (int64, error)
	ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*model.Post, error)

	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, error)

	CountByAuthors(ctx context.Context, authorIDs []string) (int64, error)
	ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*model.Post, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

type scope func(*gorm.DB) *gorm.DB

func all(db *gorm.DB) *gorm.DB { return db }

func byGroup(groupID string) scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("group_id = ?", groupID) }
}

func byAuthor(authorID string) scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("author_id = ?", authorID) }
}

func byAuthors(authorIDs []string) scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("author_id IN ?", authorIDs) }
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("Author", "Group").Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	// 不带关联，避免 gorm 回写预加载的 Author/Group
	fields := &model.Post{Text: post.Text, GroupID: post.GroupID, Image: post.Image, UpdatedAt: post.UpdatedAt}
	return r.db.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Select("Text", "GroupID", "Image", "UpdatedAt").
		Updates(fields).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, all)
}

func (r *postRepository) ListAll(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	return r.list(ctx, all, offset, limit)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	return r.count(ctx, byGroup(groupID))
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*model.Post, error) {
	return r.list(ctx, byGroup(groupID), offset, limit)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return r.count(ctx, byAuthor(authorID))
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, error) {
	return r.list(ctx, byAuthor(authorID), offset, limit)
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []string) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	return r.count(ctx, byAuthors(authorIDs))
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*model.Post, error) {
	if len(authorIDs) == 0 {
		return []*model.Post{}, nil
	}
	return r.list(ctx, byAuthors(authorIDs), offset, limit)
}

func (r *postRepository) count(ctx context.Context, s scope) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Scopes(s).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) list(ctx context.Context, s scope, offset, limit int) ([]*model.Post, error) {
	res := make([]*model.Post, 0, limit)
	if limit <= 0 {
		return res, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Scopes(s).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}
