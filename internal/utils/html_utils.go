package utils

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceHTMLContent 为评论中的图片增加安全和优化属性，并把单独成段的视频链接转换为嵌入式播放器
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
		s.SetAttr("decoding", "async")
	})

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		// Only a paragraph that is nothing but a link
		if s.Children().Length() != 1 || !s.Children().First().Is("a") {
			return
		}
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "http") || strings.Contains(text, " ") {
			return
		}
		if id := youTubeID(text); id != "" {
			s.ReplaceWithHtml(`<div class="video-container"><iframe src="https://www.youtube-nocookie.com/embed/` + id + `" frameborder="0" allowfullscreen loading="lazy" allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture"></iframe></div>`)
		}
	})

	// goquery renders full document tags if missing, we just want the body content
	html, _ := doc.Find("body").Html()
	if html == "" {
		html, _ = doc.Html()
	}

	return template.HTML(html)
}

// youTubeID 提取 YouTube 视频 ID，非 YouTube 链接返回空字符串
func youTubeID(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	var id string
	switch strings.TrimPrefix(u.Host, "www.") {
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
		}
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return ""
		}
	}
	return id
}
