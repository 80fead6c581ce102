package services

import (
	"bytes"
	"fmt"
	"sort"
	"staticcomments/internal/config"
	"staticcomments/internal/models"
	"time"

	"github.com/gorilla/feeds"
)

type feedEntry struct {
	post    *models.Post
	comment models.ThreadedComment
}

// BuildFeed 生成全站最新评论的 RSS，limit <= 0 表示不限制条数
func BuildFeed(cfg *config.Config, posts []*models.Post, limit int) *feeds.Feed {
	var entries []feedEntry
	for _, p := range posts {
		for _, c := range p.Comments {
			entries = append(entries, feedEntry{post: p, comment: c})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].comment, entries[j].comment
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return entries[i].post.Slug < entries[j].post.Slug
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	feed := &feeds.Feed{
		Title:       cfg.SiteTitle + " comments",
		Link:        &feeds.Link{Href: cfg.SiteURL + "/"},
		Description: "Latest comments on " + cfg.SiteTitle,
	}
	if len(entries) > 0 {
		feed.Created = entries[0].comment.Date
	} else {
		feed.Created = time.Now()
	}

	for _, e := range entries {
		link := cfg.SiteURL + e.post.URL() + "#" + e.comment.Anchor()
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       fmt.Sprintf("%s on %s", e.comment.Author, e.post.Title),
			Link:        &feeds.Link{Href: link},
			Author:      &feeds.Author{Name: e.comment.Author},
			Description: string(e.comment.HTML),
			Created:     e.comment.Date,
		})
	}
	return feed
}

// RenderFeed 输出 RSS 2.0 文本
func RenderFeed(cfg *config.Config, posts []*models.Post, limit int) ([]byte, error) {
	var buf bytes.Buffer
	if err := BuildFeed(cfg, posts, limit).WriteRss(&buf); err != nil {
		return nil, fmt.Errorf("comments feed: %w", err)
	}
	return buf.Bytes(), nil
}
