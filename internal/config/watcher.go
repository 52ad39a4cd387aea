package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher 监听配置文件变更,重新加载后逐个通知订阅者
// 只对显式指定的配置文件生效,默认搜索路径加载的配置不参与热更新
type Watcher struct {
	viper *viper.Viper

	mu       sync.Mutex
	handlers []func(*Config)
	closed   bool
}

// NewWatcher 创建针对指定配置文件的监听器
func NewWatcher(path string) *Watcher {
	v := viper.New()
	v.SetConfigFile(path)
	return &Watcher{viper: v}
}

// Subscribe 注册变更回调
func (w *Watcher) Subscribe(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, fn)
}

// Start 开始监听,配置文件每次写入都触发一次重新加载
func (w *Watcher) Start() error {
	if err := w.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	w.viper.OnConfigChange(func(fsnotify.Event) {
		w.reload()
	})
	w.viper.WatchConfig()
	return nil
}

// reload 重新读取并解析配置,成功后在锁外派发给订阅者
// 解析失败时保留旧配置,等待下一次写入
func (w *Watcher) reload() {
	if err := w.viper.ReadInConfig(); err != nil {
		return
	}
	var next Config
	if err := w.viper.Unmarshal(&next); err != nil {
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	handlers := append([]func(*Config){}, w.handlers...)
	w.mu.Unlock()

	for _, fn := range handlers {
		fn(&next)
	}
}

// Stop 停止向订阅者派发变更
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
