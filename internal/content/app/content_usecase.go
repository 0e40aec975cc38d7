package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"devconnect_backend/internal/content/domain"
	"devconnect_backend/internal/content/repository"
	notifdomain "devconnect_backend/internal/notification/domain"
	"devconnect_backend/pkg/cache"
	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/logger"
	"devconnect_backend/pkg/tasks"

	"github.com/google/uuid"
)

const (
	postKeyPrefix       = "post"
	postListPrefix      = "posts:list"
	postSearchPrefix    = "posts:search"
	defaultPostPageSize = int64(20)
)

// Notifier is the slice of the notification layer content needs.
type Notifier interface {
	Create(ctx context.Context, recipientID, actorID string, typ notifdomain.NotificationType, message string, resource *notifdomain.Resource) (*notifdomain.Notification, error)
}

// MemberDirectory resolves usernames to member ids for mentions.
type MemberDirectory interface {
	FindIDsByUsernames(ctx context.Context, usernames []string) (map[string]string, error)
}

// ContentUseCase posts, comments and issues, with a cache-aside read
// path. Every write invalidates the entity key and the list/search
// prefixes before returning, so a subsequent read never sees a stale
// cached copy of what it just changed.
type ContentUseCase struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
	cache       *cache.Service
	notifier    Notifier
	members     MemberDirectory
	runner      *tasks.Runner
	postTTL     time.Duration
	listTTL     time.Duration
}

// NewContentUseCase create ContentUseCase
func NewContentUseCase(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	issueRepo repository.IssueRepository,
	cacheSvc *cache.Service,
	notifier Notifier,
	members MemberDirectory,
	runner *tasks.Runner,
	postTTL, listTTL time.Duration,
) *ContentUseCase {
	if postTTL <= 0 {
		postTTL = 10 * time.Minute
	}
	if listTTL <= 0 {
		listTTL = time.Minute
	}
	return &ContentUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
		cache:       cacheSvc,
		notifier:    notifier,
		members:     members,
		runner:      runner,
		postTTL:     postTTL,
		listTTL:     listTTL,
	}
}

func (uc *ContentUseCase) invalidatePost(ctx context.Context, postID string) {
	uc.cache.Delete(ctx, cache.Key(postKeyPrefix, postID))
	uc.cache.DeletePattern(ctx, postListPrefix)
	uc.cache.DeletePattern(ctx, postSearchPrefix)
}

// CreatePost create a post and notify mentioned members
func (uc *ContentUseCase) CreatePost(ctx context.Context, authorID, title, content string, tags []string) (*domain.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, errprocess.Validation("title and content are required")
	}

	now := time.Now().Unix()
	post := &domain.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		Likes:     []string{},
		Bookmarks: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, errprocess.Persistence("post create failed", err)
	}

	uc.invalidatePost(ctx, post.ID)
	uc.notifyMentions(post.Content, authorID, "post", post.ID)
	return post, nil
}

// GetPost cache-aside read. A hit serves the cached copy, a miss
// loads the store and fills the cache. The view counter is bumped in
// the background either way, the cached copy may lag it.
func (uc *ContentUseCase) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	key := cache.Key(postKeyPrefix, postID)

	var cached domain.Post
	if uc.cache.Get(ctx, key, &cached) {
		uc.bumpViews(postID)
		return &cached, nil
	}

	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, errprocess.Persistence("post lookup failed", err)
	}
	if post == nil {
		return nil, errprocess.NotFound("post not found")
	}

	uc.cache.Set(ctx, key, post, uc.postTTL)
	uc.bumpViews(postID)
	return post, nil
}

func (uc *ContentUseCase) bumpViews(postID string) {
	uc.runner.Submit("view count bump", func(taskCtx context.Context) error {
		return uc.postRepo.IncrementViews(taskCtx, postID)
	})
}

// ListPosts cached filtered listing
func (uc *ContentUseCase) ListPosts(ctx context.Context, query domain.PostQuery) (*domain.PostPage, error) {
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = defaultPostPageSize
	}
	if query.Page < 1 {
		query.Page = 1
	}

	key := cache.QueryKey(postListPrefix, map[string]string{
		"author": query.AuthorID,
		"tag":    query.Tag,
		"page":   strconv.FormatInt(query.Page, 10),
		"limit":  strconv.FormatInt(query.Limit, 10),
	})

	var cached domain.PostPage
	if uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	posts, total, err := uc.postRepo.Find(ctx, query)
	if err != nil {
		return nil, errprocess.Persistence("post list failed", err)
	}

	page := &domain.PostPage{Posts: posts, Total: total}
	uc.cache.Set(ctx, key, page, uc.listTTL)
	return page, nil
}

// SearchPosts cached keyword search over title and content
func (uc *ContentUseCase) SearchPosts(ctx context.Context, keyword string, page, limit int64) (*domain.PostPage, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errprocess.Validation("keyword is required")
	}
	if limit <= 0 || limit > 100 {
		limit = defaultPostPageSize
	}
	if page < 1 {
		page = 1
	}

	key := cache.QueryKey(postSearchPrefix, map[string]string{
		"q":     keyword,
		"page":  strconv.FormatInt(page, 10),
		"limit": strconv.FormatInt(limit, 10),
	})

	var cached domain.PostPage
	if uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	posts, total, err := uc.postRepo.Find(ctx, domain.PostQuery{Keyword: keyword, Page: page, Limit: limit})
	if err != nil {
		return nil, errprocess.Persistence("post search failed", err)
	}

	result := &domain.PostPage{Posts: posts, Total: total}
	uc.cache.Set(ctx, key, result, uc.listTTL)
	return result, nil
}

// UpdatePost rewrite a post, authors only
func (uc *ContentUseCase) UpdatePost(ctx context.Context, postID, editorID, title, content string, tags []string) error {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return errprocess.Persistence("post lookup failed", err)
	}
	if post == nil {
		return errprocess.NotFound("post not found")
	}
	if post.AuthorID != editorID {
		return errprocess.Authorization("only the author may edit the post")
	}

	if err := uc.postRepo.Update(ctx, postID, title, content, tags); err != nil {
		return errprocess.Persistence("post update failed", err)
	}
	uc.invalidatePost(ctx, postID)
	return nil
}

// DeletePost delete a post, authors only
func (uc *ContentUseCase) DeletePost(ctx context.Context, postID, memberID string) error {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return errprocess.Persistence("post lookup failed", err)
	}
	if post == nil {
		return errprocess.NotFound("post not found")
	}
	if post.AuthorID != memberID {
		return errprocess.Authorization("only the author may delete the post")
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return errprocess.Persistence("post delete failed", err)
	}
	uc.invalidatePost(ctx, postID)
	return nil
}

// LikePost add the member to the post like set. Repeating a like is a
// no-op that still succeeds; the author is only notified on the first
// one.
func (uc *ContentUseCase) LikePost(ctx context.Context, postID, memberID string) error {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return errprocess.Persistence("post lookup failed", err)
	}
	if post == nil {
		return errprocess.NotFound("post not found")
	}
	alreadyLiked := post.LikedBy(memberID)

	if err := uc.postRepo.AddLike(ctx, postID, memberID); err != nil {
		return errprocess.Persistence("like failed", err)
	}
	uc.invalidatePost(ctx, postID)

	if !alreadyLiked {
		uc.notify(post.AuthorID, memberID, notifdomain.TypeLike, "liked your post", "post", postID)
	}
	return nil
}

// UnlikePost remove the member from the post like set
func (uc *ContentUseCase) UnlikePost(ctx context.Context, postID, memberID string) error {
	if err := uc.postRepo.RemoveLike(ctx, postID, memberID); err != nil {
		return errprocess.Persistence("unlike failed", err)
	}
	uc.invalidatePost(ctx, postID)
	return nil
}

// BookmarkPost add the member to the post bookmark set
func (uc *ContentUseCase) BookmarkPost(ctx context.Context, postID, memberID string) error {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return errprocess.Persistence("post lookup failed", err)
	}
	if post == nil {
		return errprocess.NotFound("post not found")
	}

	if err := uc.postRepo.AddBookmark(ctx, postID, memberID); err != nil {
		return errprocess.Persistence("bookmark failed", err)
	}
	uc.invalidatePost(ctx, postID)
	return nil
}

// UnbookmarkPost remove the member from the post bookmark set
func (uc *ContentUseCase) UnbookmarkPost(ctx context.Context, postID, memberID string) error {
	if err := uc.postRepo.RemoveBookmark(ctx, postID, memberID); err != nil {
		return errprocess.Persistence("unbookmark failed", err)
	}
	uc.invalidatePost(ctx, postID)
	return nil
}

// AddComment comment on a post, notifying the author and any
// mentioned members
func (uc *ContentUseCase) AddComment(ctx context.Context, postID, authorID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errprocess.Validation("content is required")
	}

	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, errprocess.Persistence("post lookup failed", err)
	}
	if post == nil {
		return nil, errprocess.NotFound("post not found")
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}
	if err := uc.commentRepo.Insert(ctx, comment); err != nil {
		return nil, errprocess.Persistence("comment insert failed", err)
	}

	if err := uc.postRepo.IncrementCommentCount(ctx, postID, 1); err != nil {
		logger.Log.Errorf("comment count bump failed:", err)
	}
	uc.invalidatePost(ctx, postID)

	uc.notify(post.AuthorID, authorID, notifdomain.TypeComment, "commented on your post", "post", postID)
	uc.notifyMentions(content, authorID, "post", postID)
	return comment, nil
}

// ListComments paginated comments for a post
func (uc *ContentUseCase) ListComments(ctx context.Context, postID string, page, limit int64) ([]domain.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPostPageSize
	}
	comments, err := uc.commentRepo.FindByPost(ctx, postID, page, limit)
	if err != nil {
		return nil, errprocess.Persistence("comment list failed", err)
	}
	return comments, nil
}

// notify create one notification in the background. The notifier
// already drops self-directed ones.
func (uc *ContentUseCase) notify(recipientID, actorID string, typ notifdomain.NotificationType, message, resourceType, resourceID string) {
	uc.runner.Submit(fmt.Sprintf("%s notification", typ), func(taskCtx context.Context) error {
		_, err := uc.notifier.Create(taskCtx, recipientID, actorID, typ, message, &notifdomain.Resource{Type: resourceType, ID: resourceID})
		return err
	})
}

// notifyMentions resolve @usernames in text and notify each mentioned
// member. Unknown usernames are silently skipped.
func (uc *ContentUseCase) notifyMentions(text, actorID, resourceType, resourceID string) {
	usernames := domain.ExtractMentions(text)
	if len(usernames) == 0 {
		return
	}

	uc.runner.Submit("mention notifications", func(taskCtx context.Context) error {
		ids, err := uc.members.FindIDsByUsernames(taskCtx, usernames)
		if err != nil {
			return err
		}
		for _, memberID := range ids {
			if _, err := uc.notifier.Create(taskCtx, memberID, actorID, notifdomain.TypeMention, "mentioned you", &notifdomain.Resource{Type: resourceType, ID: resourceID}); err != nil {
				logger.Log.Errorf("mention notification failed:", err)
			}
		}
		return nil
	})
}
