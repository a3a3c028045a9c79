package theme

import "testing"

// ==================== 初始化边界 ====================

func TestCurrentBeforeInitPanics(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("Init 之前调用 Current 应该 panic")
		}
	}()
	Current()
}

func TestInitThenCurrent(t *testing.T) {
	Reset()
	Init(ModeDark)
	if Current() != ModeDark {
		t.Fatalf("期望 dark，实际 %s", Current())
	}
}

func TestInitInvalidModeFallsBackToLight(t *testing.T) {
	Reset()
	Init(Mode("neon"))
	if Current() != ModeLight {
		t.Fatalf("非法模式应回落到 light，实际 %s", Current())
	}
}

// ==================== 切换与广播 ====================

func TestToggle(t *testing.T) {
	Reset()
	Init(ModeLight)

	if got := Toggle(); got != ModeDark {
		t.Fatalf("light 切换后应为 dark，实际 %s", got)
	}
	if got := Toggle(); got != ModeLight {
		t.Fatalf("dark 切换后应为 light，实际 %s", got)
	}
}

func TestSetIgnoresInvalidMode(t *testing.T) {
	Reset()
	Init(ModeDark)
	Set(Mode("neon"))
	if Current() != ModeDark {
		t.Fatalf("非法模式的 Set 应该被忽略，实际 %s", Current())
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	Reset()
	Init(ModeLight)

	var received []Mode
	Subscribe(func(m Mode) { received = append(received, m) })

	Toggle()       // -> dark
	Set(ModeLight) // -> light
	Set(ModeLight) // 重复设置也广播

	want := []Mode{ModeDark, ModeLight, ModeLight}
	if len(received) != len(want) {
		t.Fatalf("期望 %d 次通知，实际 %d 次: %v", len(want), len(received), received)
	}
	for i, m := range want {
		if received[i] != m {
			t.Fatalf("第 %d 次通知期望 %s，实际 %s", i, m, received[i])
		}
	}
}

func TestReinitKeepsSubscribers(t *testing.T) {
	Reset()
	Init(ModeLight)

	count := 0
	Subscribe(func(Mode) { count++ })

	Init(ModeDark) // 重复 Init 只改模式
	Toggle()
	if count != 1 {
		t.Fatalf("重复 Init 不应清掉订阅者，通知次数 %d", count)
	}
}
