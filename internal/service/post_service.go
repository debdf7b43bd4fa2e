package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/events"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// PostInput 创建/编辑帖子的表单
type PostInput struct {
	Text    string  `json:"text" validate:"notblank,max=10000"`
	GroupID *string `json:"group_id,omitempty" validate:"omitempty,max=36"`
	// Image 不透明的附件引用
	Image *string `json:"image,omitempty" validate:"omitempty,max=255"`
}

type CommentInput struct {
	Text string `json:"text" validate:"notblank,max=2000"`
}

// PostDetail 帖子详情页
type PostDetail struct {
	Post            *model.Post      `json:"post"`
	AuthorPostCount int64            `json:"author_post_count"`
	Comments        []*model.Comment `json:"comments"`
}

type PostService interface {
	Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	// Update 仅作者本人可编辑
	Update(ctx context.Context, actorID, postID string, in PostInput) (*model.Post, error)
	Detail(ctx context.Context, postID string) (*PostDetail, error)
	AddComment(ctx context.Context, authorID, postID string, in CommentInput) (*model.Comment, error)
}

type postService struct {
	posts     repository.PostRepository
	groups    repository.GroupRepository
	comments  repository.CommentRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewPostService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	comments repository.CommentRepository,
	publisher events.Publisher,
) PostService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &postService{
		posts:     posts,
		groups:    groups,
		comments:  comments,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *postService) normalize(ctx context.Context, in *PostInput) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	in.Text = strings.TrimSpace(in.Text)
	if in.GroupID != nil && *in.GroupID == "" {
		in.GroupID = nil
	}
	if in.Image != nil && *in.Image == "" {
		in.Image = nil
	}
	if in.GroupID != nil {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("group does not exist")
			}
			return err
		}
	}
	return nil
}

func (s *postService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	if err := s.normalize(ctx, &in); err != nil {
		return nil, err
	}
	now := s.now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Text:      in.Text,
		AuthorID:  authorID,
		GroupID:   in.GroupID,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.publish(ctx, events.SubjectPostCreated, post)
	return post, nil
}

func (s *postService) Update(ctx context.Context, actorID, postID string, in PostInput) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post "+postID)
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}
	if err := s.normalize(ctx, &in); err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	post.Image = in.Image
	post.UpdatedAt = s.now()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.publish(ctx, events.SubjectPostUpdated, post)
	return s.posts.GetByID(ctx, postID)
}

func (s *postService) Detail(ctx context.Context, postID string) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post "+postID)
	}
	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, AuthorPostCount: count, Comments: comments}, nil
}

func (s *postService) AddComment(ctx context.Context, authorID, postID string, in CommentInput) (*model.Comment, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, notFound(err, "post "+postID)
	}
	comment := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      strings.TrimSpace(in.Text),
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// publish 尽力而为，失败只记录日志
func (s *postService) publish(ctx context.Context, subject string, post *model.Post) {
	if err := s.publisher.Publish(ctx, subject, post); err != nil {
		logger.Warn("publish post event failed",
			zap.String("subject", subject), zap.String("post_id", post.ID), zap.Error(err))
	}
}
