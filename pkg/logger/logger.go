// Package logger 提供全局zerolog日志器
//
// 设计说明：
// 1. zerolog零分配、结构化输出，生产环境输出JSON便于采集
// 2. 通过Init从配置初始化一次，业务代码统一用Get()获取
// 3. 日志中绝不记录密码、Token等敏感信息
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	log  zerolog.Logger
	once sync.Once
)

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	EnableCaller bool   // 是否记录调用位置
}

// Init 初始化全局日志器（进程启动时调用一次）
func Init(opts Options) {
	once.Do(func() {
		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		var logger zerolog.Logger
		if opts.Format == "console" {
			// 开发环境：彩色控制台输出
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
		} else {
			// 生产环境：JSON输出（便于ELK/Loki采集）
			logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		}

		if opts.EnableCaller {
			logger = logger.With().Caller().Logger()
		}

		log = logger
	})
}

// Get 获取全局日志器
// 未初始化时返回默认配置的日志器（便于测试直接使用）
func Get() *zerolog.Logger {
	once.Do(func() {
		log = zerolog.New(os.Stdout).With().Timestamp().Logger()
	})
	return &log
}

// parseLevel 解析日志级别，非法值回退到info
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
