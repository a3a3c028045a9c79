package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 全局 logger，Init 之前是 no-op，避免包初始化顺序问题
var global = zap.NewNop()

// Init 初始化全局日志
// level: debug / info / warn / error
// development: true 时输出人类可读格式并带调用方
func Init(level string, development bool) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	global = l
}

// L 获取全局 logger
func L() *zap.Logger {
	return global
}

// Sync 刷新缓冲，进程退出前调用
func Sync() {
	_ = global.Sync()
}
