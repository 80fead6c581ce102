package router

import (
	"sort"
	"staticcomments/internal/assets"
	"staticcomments/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// LoadTemplates 用内嵌模板组装 gin 渲染器，页面名与 assets.Pages 一致
func LoadTemplates() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	pages := make([]string, 0, len(assets.Pages))
	for page := range assets.Pages {
		pages = append(pages, page)
	}
	sort.Strings(pages)

	for _, page := range pages {
		sources, err := assets.PageSources(page)
		if err != nil {
			return nil, err
		}
		r.AddFromStringsFuncs(page, utils.TemplateFuncs(), sources...)
	}
	return r, nil
}
