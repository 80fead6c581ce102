package utils

import (
	"fmt"
	"html/template"
	"time"
)

// maxIndentDepth 超过该深度的回复不再继续缩进
const maxIndentDepth = 6

// TemplateFuncs 页面模板共用的辅助函数
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04")
		},
		"isoDate": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
		"indent": func(depth int) template.CSS {
			if depth > maxIndentDepth {
				depth = maxIndentDepth
			}
			return template.CSS(fmt.Sprintf("%.1fem", float64(depth)*1.5))
		},
	}
}
