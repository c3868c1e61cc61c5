package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
)

// 页面位置，对应营销投放的 location
const (
	LocationHome     = "home"
	LocationPost     = "post"
	LocationCategory = "category"
)

const relatedPostsLimit = 4

// Sections 页面公共区块，任何一块失败都只降级为空
type Sections struct {
	Categories []*model.Category
	Tags       []model.Tag
	Banners    []model.Publication
	Popups     []model.Publication
	Meta       model.PageMeta
	// 降级的区块名
	SectionErrors []string
}

type HomePage struct {
	Sections
	Posts *pagination.Page[model.Post]
	Query string
}

type ArticlePage struct {
	Sections
	Post     *model.Post
	Comments *dto.CommentThread
	Related  []model.Post
}

type CategoryPage struct {
	Sections
	Category *model.Category
	Posts    *pagination.Page[model.Post]
}

// BlogService 组装前台页面，主数据失败返回错误，其余区块并发拉取、失败降级
type BlogService struct {
	client    *backend.Client
	comments  *CommentService
	category  *CategoryService
	marketing *MarketingService
	seo       *SEOService
	cfg       *config.Config
}

func NewBlogService(
	client *backend.Client,
	comments *CommentService,
	category *CategoryService,
	marketing *MarketingService,
	seo *SEOService,
	cfg *config.Config,
) *BlogService {
	return &BlogService{
		client:    client,
		comments:  comments,
		category:  category,
		marketing: marketing,
		seo:       seo,
		cfg:       cfg,
	}
}

// Home 首页：文章列表 + 分类、标签、横幅
func (s *BlogService) Home(ctx context.Context, page int, query string) (*HomePage, error) {
	if err := getValidator().Var(query, "max=100"); err != nil {
		return nil, fmt.Errorf("%w: query too long", ErrInvalidRequest)
	}
	page, pageSize := pagination.Normalize(page, s.cfg.Site.PostsPageSize, pagination.DefaultPageSize)

	out := &HomePage{Query: query}
	site := s.seo.Defaults()

	g, gctx := errgroup.WithContext(ctx)
	d := &degrader{ctx: ctx}

	g.Go(func() error {
		posts, err := s.client.ListPosts(gctx, &dto.PostListQuery{
			Page:     page,
			PageSize: pageSize,
			Status:   model.PostStatusPublished,
			Query:    query,
		})
		if err != nil {
			return err
		}
		out.Posts = posts
		return nil
	})
	s.common(gctx, g, d, &out.Sections, LocationHome, &site)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Meta = PageMeta(site, "", "", "", "/")
	out.SectionErrors = d.failed
	return out, nil
}

// Article 文章详情：文章是主数据，评论、相关文章等并发拉取
func (s *BlogService) Article(ctx context.Context, slug string, commentPage int) (*ArticlePage, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: empty slug", ErrInvalidRequest)
	}

	post, err := s.client.PostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	out := &ArticlePage{Post: post}
	site := s.seo.Defaults()

	g, gctx := errgroup.WithContext(ctx)
	d := &degrader{ctx: ctx}

	g.Go(func() error {
		thread, err := s.comments.Thread(gctx, post.ID, commentPage)
		if err != nil {
			d.fail("comments", err)
			return nil
		}
		out.Comments = thread
		return nil
	})
	g.Go(func() error {
		related, err := s.client.RelatedPosts(gctx, post.ID, relatedPostsLimit)
		if err != nil {
			d.fail("related", err)
			return nil
		}
		out.Related = related
		return nil
	})
	s.common(gctx, g, d, &out.Sections, LocationPost, &site)

	_ = g.Wait()

	title := post.MetaTitle
	if title == "" {
		title = post.Title
	}
	description := post.MetaDescription
	if description == "" {
		description = post.Excerpt
	}
	out.Meta = PageMeta(site, title, description, post.CoverImage, "/posts/"+post.Slug)
	out.SectionErrors = d.failed
	return out, nil
}

// Category 分类页：分类信息和文章列表都是主数据
func (s *BlogService) Category(ctx context.Context, slug string, page int) (*CategoryPage, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: empty slug", ErrInvalidRequest)
	}
	page, pageSize := pagination.Normalize(page, s.cfg.Site.PostsPageSize, pagination.DefaultPageSize)

	out := &CategoryPage{}
	site := s.seo.Defaults()

	g, gctx := errgroup.WithContext(ctx)
	d := &degrader{ctx: ctx}

	g.Go(func() error {
		category, err := s.client.CategoryBySlug(gctx, slug)
		if err != nil {
			return err
		}
		out.Category = category
		return nil
	})
	g.Go(func() error {
		posts, err := s.client.ListPosts(gctx, &dto.PostListQuery{
			Page:     page,
			PageSize: pageSize,
			Status:   model.PostStatusPublished,
			Category: slug,
		})
		if err != nil {
			return err
		}
		out.Posts = posts
		return nil
	})
	s.common(gctx, g, d, &out.Sections, LocationCategory, &site)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Meta = PageMeta(site, out.Category.Name, out.Category.Description, out.Category.Image, "/categories/"+slug)
	out.SectionErrors = d.failed
	return out, nil
}

// common 侧边栏、投放和 SEO 配置，失败时降级
func (s *BlogService) common(ctx context.Context, g *errgroup.Group, d *degrader, sec *Sections, location string, site **model.SEOConfig) {
	g.Go(func() error {
		tree, err := s.category.Tree(ctx)
		if err != nil {
			d.fail("categories", err)
			return nil
		}
		sec.Categories = tree
		return nil
	})
	g.Go(func() error {
		tags, err := s.client.ListTags(ctx)
		if err != nil {
			d.fail("tags", err)
			return nil
		}
		sec.Tags = tags
		return nil
	})
	g.Go(func() error {
		items, err := s.marketing.ForLocation(ctx, location)
		if err != nil {
			d.fail("publications", err)
			return nil
		}
		for _, p := range items {
			if p.Type == model.PublicationPopup {
				sec.Popups = append(sec.Popups, p)
			} else {
				sec.Banners = append(sec.Banners, p)
			}
		}
		return nil
	})
	g.Go(func() error {
		cfg, err := s.seo.Get(ctx)
		if err != nil {
			d.fail("seo", err)
			return nil
		}
		*site = cfg
		return nil
	})
}

// degrader 记录降级的区块
type degrader struct {
	ctx    context.Context
	mu     sync.Mutex
	failed []string
}

func (d *degrader) fail(section string, err error) {
	logger.FromContext(d.ctx).Warn("page section degraded", "section", section, "error", err)

	d.mu.Lock()
	d.failed = append(d.failed, section)
	d.mu.Unlock()
}
