package theme

import "sync"

// ==================== 主题设置 ====================
// 主题收敛成进程级单例：启动时 Init 一次，之后只能 Toggle / Set。
// Init 之前调用 Current 属于编排错误 (程序员错误)，直接 panic 快速暴露。

// Mode 主题模式
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Valid 模式是否合法
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

type settings struct {
	mu          sync.RWMutex
	mode        Mode
	subscribers []func(Mode)
}

var (
	global      *settings
	initialized bool
	initMu      sync.Mutex
)

// Init 初始化主题，启动时调用一次
// 非法模式回落到 light；重复 Init 只改模式，不重置订阅者
func Init(mode Mode) {
	initMu.Lock()
	defer initMu.Unlock()

	if !mode.Valid() {
		mode = ModeLight
	}
	if global == nil {
		global = &settings{mode: mode}
	} else {
		global.mu.Lock()
		global.mode = mode
		global.mu.Unlock()
	}
	initialized = true
}

// mustSettings Init 前的任何读写都是接线错误，立刻炸出来而不是给默认值
func mustSettings() *settings {
	initMu.Lock()
	defer initMu.Unlock()
	if !initialized {
		panic("theme: 未初始化就访问主题设置，请先在启动流程里调用 theme.Init")
	}
	return global
}

// Current 当前主题模式
func Current() Mode {
	s := mustSettings()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Set 切换到指定模式并广播
func Set(mode Mode) {
	if !mode.Valid() {
		return
	}
	s := mustSettings()

	s.mu.Lock()
	s.mode = mode
	subs := make([]func(Mode), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(mode)
	}
}

// Toggle 明暗互切
func Toggle() Mode {
	s := mustSettings()

	s.mu.Lock()
	if s.mode == ModeDark {
		s.mode = ModeLight
	} else {
		s.mode = ModeDark
	}
	next := s.mode
	subs := make([]func(Mode), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe 订阅主题变更
func Subscribe(fn func(Mode)) {
	s := mustSettings()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Reset 仅供测试：重置为未初始化状态
func Reset() {
	initMu.Lock()
	defer initMu.Unlock()
	global = nil
	initialized = false
}
