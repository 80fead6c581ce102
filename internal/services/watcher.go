package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce 连续保存合并为一次重建
const DefaultDebounce = 500 * time.Millisecond

// Watcher 监听文章目录（含 .comments 子目录），变化后触发重建
type Watcher struct {
	root     string
	debounce time.Duration
	rebuild  func(ctx context.Context) error
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

func NewWatcher(root string, rebuild func(ctx context.Context) error, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		rebuild:  rebuild,
		logger:   logger,
		watcher:  fw,
	}, nil
}

// SetDebounce 修改合并窗口
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run 阻塞运行直到 ctx 取消。重建失败只记录日志，不退出
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info("watching for changes", zap.String("dir", w.root))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))

		case <-timer.C:
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed", zap.Error(err))
				continue
			}
			w.logger.Info("rebuilt site")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
