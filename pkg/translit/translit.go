// Package translit 提供确定性的文字转写（罗马化）
//
// 设计说明：
// 1. 书名/作者可能是孟加拉文、阿拉伯文等非拉丁文字，搜索时用户
//    往往输入罗马化拼写（如 "rabindranath"），需要跨文字匹配
// 2. 图书入库时预计算罗马化字段并持久化，搜索时只对查询词转写一次
// 3. 转写必须确定：同一输入永远得到同一输出（搜索结果可复现）
package translit

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Romanize 将任意文字转写为ASCII罗马化形式
// 已经是拉丁文字的输入基本原样返回（仅去掉变音符号）
func Romanize(s string) string {
	return strings.TrimSpace(unidecode.Unidecode(s))
}

// Fold 转写并转为小写，用于大小写不敏感的匹配
func Fold(s string) string {
	return strings.ToLower(Romanize(s))
}
