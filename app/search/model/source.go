package model

import (
	"context"
	"strconv"

	"community-platform/app/search/engine"
	"community-platform/common/breakerx"

	"github.com/zeromicro/go-zero/core/breaker"
	"gorm.io/gorm"
)

// ==================== 候选集来源 ====================
//
// GormCandidateSource 把五张实体表适配成 engine.CandidateSource：
// 按类型取回候选集并转换为引擎的字段/属性视图。
// 排序数学本身与存储无关，单测可用内存桩替换本实现。
//
// DB 访问包在熔断器里：MySQL 连续故障时快速失败，
// 避免搜索请求堆积拖垮服务（多类型搜索的部分失败语义由引擎处理）

type GormCandidateSource struct {
	users    *UserModel
	threads  *ThreadModel
	posts    *PostModel
	news     *NewsModel
	notices  *NoticeModel
	fetchBrk breaker.Breaker
}

// NewGormCandidateSource 创建基于 gorm 的候选集来源
func NewGormCandidateSource(db *gorm.DB) *GormCandidateSource {
	return &GormCandidateSource{
		users:    NewUserModel(db),
		threads:  NewThreadModel(db),
		posts:    NewPostModel(db),
		news:     NewNewsModel(db),
		notices:  NewNoticeModel(db),
		fetchBrk: breakerx.NewSREBreaker(breakerx.SREConfig{Name: "search-mysql"}),
	}
}

// FetchCandidates 实现 engine.CandidateSource
func (s *GormCandidateSource) FetchCandidates(ctx context.Context,
	entityType engine.EntityType) ([]engine.Candidate, error) {

	var (
		cands []engine.Candidate
		err   error
	)

	brkErr := s.fetchBrk.Do(func() error {
		switch entityType {
		case engine.EntityUser:
			cands, err = s.fetchUsers(ctx)
		case engine.EntityThread:
			cands, err = s.fetchThreads(ctx)
		case engine.EntityPost:
			cands, err = s.fetchPosts(ctx)
		case engine.EntityNews:
			cands, err = s.fetchNews(ctx)
		case engine.EntityNotice:
			cands, err = s.fetchNotices(ctx)
		default:
			err = engine.ErrUnknownEntityType
		}
		return err
	})
	if brkErr != nil {
		return nil, brkErr
	}
	return cands, nil
}

// ==================== 逐类型转换 ====================

func (s *GormCandidateSource) fetchUsers(ctx context.Context) ([]engine.Candidate, error) {
	users, err := s.users.FindSearchable(ctx)
	if err != nil {
		return nil, err
	}
	cands := make([]engine.Candidate, 0, len(users))
	for i := range users {
		u := &users[i]
		cands = append(cands, engine.Candidate{
			ID: u.ID,
			Fields: map[string]string{
				"username":   u.Username,
				"first_name": u.FirstName,
				"last_name":  u.LastName,
				"bio":        u.Bio,
				"location":   u.Location,
			},
			Attrs: map[string]interface{}{
				"role":       u.Role,
				"location":   u.Location,
				"avatar_url": u.AvatarURL,
				"created_at": u.CreatedAt,
			},
			SortKey: u.CreatedAt,
		})
	}
	return cands, nil
}

func (s *GormCandidateSource) fetchThreads(ctx context.Context) ([]engine.Candidate, error) {
	threads, err := s.threads.FindSearchable(ctx)
	if err != nil {
		return nil, err
	}
	cands := make([]engine.Candidate, 0, len(threads))
	for i := range threads {
		t := &threads[i]
		cands = append(cands, engine.Candidate{
			ID: t.ID,
			Fields: map[string]string{
				"title":       t.Title,
				"content":     t.Content,
				"author_name": t.AuthorName,
			},
			Attrs: map[string]interface{}{
				"category":    t.Category,
				"author_name": t.AuthorName,
				"is_pinned":   t.IsPinned,
				"is_closed":   t.IsClosed,
				"vote_count":  t.VoteCount,
				"created_at":  t.CreatedAt,
			},
			SortKey: t.CreatedAt,
		})
	}
	return cands, nil
}

func (s *GormCandidateSource) fetchPosts(ctx context.Context) ([]engine.Candidate, error) {
	posts, err := s.posts.FindSearchable(ctx)
	if err != nil {
		return nil, err
	}
	cands := make([]engine.Candidate, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		cands = append(cands, engine.Candidate{
			ID: p.ID,
			Fields: map[string]string{
				"content":     p.Content,
				"author_name": p.AuthorName,
			},
			Attrs: map[string]interface{}{
				"thread_id":   p.ThreadID,
				"author_name": p.AuthorName,
				"vote_count":  p.VoteCount,
				"created_at":  p.CreatedAt,
			},
			SortKey: p.CreatedAt,
		})
	}
	return cands, nil
}

func (s *GormCandidateSource) fetchNews(ctx context.Context) ([]engine.Candidate, error) {
	items, err := s.news.FindSearchable(ctx)
	if err != nil {
		return nil, err
	}
	cands := make([]engine.Candidate, 0, len(items))
	for i := range items {
		n := &items[i]
		cands = append(cands, engine.Candidate{
			ID: n.ID,
			Fields: map[string]string{
				"title":   n.Title,
				"summary": n.Summary,
				"content": n.Content,
			},
			Attrs: map[string]interface{}{
				"category":     n.Category,
				"author_name":  n.AuthorName,
				"published_at": n.PublishedAt,
			},
			SortKey: n.PublishedAt,
		})
	}
	return cands, nil
}

func (s *GormCandidateSource) fetchNotices(ctx context.Context) ([]engine.Candidate, error) {
	notices, err := s.notices.FindSearchable(ctx)
	if err != nil {
		return nil, err
	}
	cands := make([]engine.Candidate, 0, len(notices))
	for i := range notices {
		n := &notices[i]
		cands = append(cands, engine.Candidate{
			ID: n.ID,
			Fields: map[string]string{
				"title":       n.Title,
				"description": n.Description,
				"location":    n.Location,
			},
			Attrs: map[string]interface{}{
				"category":   n.Category,
				"location":   n.Location,
				"price":      n.Price,
				"is_sold":    n.IsSold,
				"created_at": n.CreatedAt,
			},
			SortKey: n.CreatedAt,
		})
	}
	return cands, nil
}

// FormatEntityID 实体 ID 统一转字符串（响应序列化用）
func FormatEntityID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
