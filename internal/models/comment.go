package models

import (
	"html/template"
	"time"
)

// Comment 一条读者评论，对应 Staticman 提交的一个 YAML 文件
type Comment struct {
	ID           string        `yaml:"_id" json:"id"`
	Author       string        `yaml:"author" json:"author"`
	URL          string        `yaml:"url" json:"url,omitempty"`
	Date         time.Time     `yaml:"-" json:"date"`
	ReplyingToID string        `yaml:"replying_to_id" json:"replying_to_id,omitempty"` // Empty for top-level comments
	Message      string        `yaml:"message" json:"-"`
	HTML         template.HTML `yaml:"-" json:"html"` // Rendered from Message once at load time
}

// IsReply 是否为回复
func (c *Comment) IsReply() bool {
	return c.ReplyingToID != ""
}

// ThreadedComment 排序后的评论，附带嵌套深度
type ThreadedComment struct {
	Comment
	Depth  int `json:"depth"`
	Parent int `json:"parent"` // Index of the parent in the ordered slice, -1 for top-level
}

// Anchor 页面内的锚点 ID
func (c ThreadedComment) Anchor() string {
	return "comment-" + c.ID
}
