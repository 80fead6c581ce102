package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"staticcomments/internal/models"
	"staticcomments/internal/utils"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

// ErrInvalidComment 评论文件缺少必填字段或字段无法解析
var ErrInvalidComment = errors.New("invalid comment")

// commentFile 评论文件的原始结构；date 可能是任意常见日期格式或 unix 时间戳
type commentFile struct {
	ID           string `yaml:"_id"`
	Author       string `yaml:"author"`
	URL          string `yaml:"url"`
	Date         string `yaml:"date"`
	ReplyingToID string `yaml:"replying_to_id"`
	Message      string `yaml:"message"`
}

// LoadComment 解析单条评论并渲染正文
func LoadComment(r io.Reader) (models.Comment, error) {
	var raw commentFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Comment{}, fmt.Errorf("%w: empty file", ErrInvalidComment)
		}
		return models.Comment{}, fmt.Errorf("%w: %v", ErrInvalidComment, err)
	}

	raw.ID = strings.TrimSpace(raw.ID)
	if raw.ID == "" {
		return models.Comment{}, fmt.Errorf("%w: missing _id", ErrInvalidComment)
	}
	if strings.TrimSpace(raw.Date) == "" {
		return models.Comment{}, fmt.Errorf("%w: missing date", ErrInvalidComment)
	}
	if strings.TrimSpace(raw.Message) == "" {
		return models.Comment{}, fmt.Errorf("%w: missing message", ErrInvalidComment)
	}

	date, err := dateparse.ParseIn(strings.TrimSpace(raw.Date), time.UTC)
	if err != nil {
		return models.Comment{}, fmt.Errorf("%w: date %q: %v", ErrInvalidComment, raw.Date, err)
	}

	return models.Comment{
		ID:           raw.ID,
		Author:       strings.TrimSpace(raw.Author),
		URL:          strings.TrimSpace(raw.URL),
		Date:         date,
		ReplyingToID: strings.TrimSpace(raw.ReplyingToID),
		Message:      raw.Message,
		HTML:         utils.RenderMarkdown(raw.Message),
	}, nil
}

// LoadCommentFile 读取并解析一个评论文件
func LoadCommentFile(path string) (models.Comment, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Comment{}, err
	}
	defer f.Close()

	c, err := LoadComment(f)
	if err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDirectory 加载目录下所有 *.yml / *.yaml 评论，按文件名排序
// 目录不存在表示该文章没有评论
func LoadDirectory(dir string) ([]models.Comment, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}

	var paths []string
	for _, pattern := range []string{"*.yml", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	comments := make([]models.Comment, 0, len(paths))
	for _, path := range paths {
		c, err := LoadCommentFile(path)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}
