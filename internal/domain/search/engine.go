// Package search 实现音译感知的图书搜索排序
//
// 匹配信号分9个互斥档位,按优先级从高到低取第一个命中的分值:
// 标题精确 > 音译标题精确 > 作者精确 > 音译作者精确 >
// 标题包含 > 音译标题包含 > 作者包含 > 音译作者包含 > 语言包含
//
// 音译让原文与罗马化拼写命中同一本书:
// 查询"rabindranath"能找到孟加拉文书名的《রবীন্দ্রনাথ রচনাবলী》,
// 因为图书入库时已派生小写罗马化的音译字段
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/translit"
)

// 档位分值:数值只决定相对顺序,档位间互斥
const (
	scoreExactTitle         = 100 // 标题精确匹配原文查询
	scoreExactTranslitTitle = 90  // 音译标题精确匹配音译查询
	scoreExactAuthor        = 80  // 作者精确匹配原文查询
	scoreExactTranslitAuth  = 70  // 音译作者精确匹配音译查询
	scoreSubstrTitle        = 60  // 标题包含原文查询
	scoreSubstrTranslitT    = 50  // 音译标题包含音译查询
	scoreSubstrAuthor       = 40  // 作者包含原文查询
	scoreSubstrTranslitA    = 30  // 音译作者包含音译查询
	scoreSubstrLanguage     = 20  // 语言包含原文查询
)

// Engine 搜索引擎(领域服务)
// 无副作用:固定数据与查询下结果确定
type Engine interface {
	// Search 按相关度搜索图书,最佳匹配在前
	// 空白查询返回ErrInvalidQuery
	Search(ctx context.Context, query string) ([]*book.Book, error)
}

type engine struct {
	repo book.Repository
}

// NewEngine 创建搜索引擎
func NewEngine(repo book.Repository) Engine {
	return &engine{repo: repo}
}

// Search 搜索图书
// 流程:
// 1. 规整查询:去空白,空查询直接报错
// 2. 派生音译变体t(与入库派生使用同一转换,保证能对上音译字段)
// 3. 仓储取候选集(title/author/language含q,或音译字段含t)
// 4. 按档位打分,分数降序、书名升序输出
func (e *engine) Search(ctx context.Context, query string) ([]*book.Book, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, apperrors.ErrInvalidQuery
	}
	t := translit.Fold(query)

	candidates, err := e.repo.SearchCandidates(ctx, q, t)
	if err != nil {
		return nil, err
	}

	type scored struct {
		book  *book.Book
		score int
	}
	results := make([]scored, 0, len(candidates))
	for _, b := range candidates {
		results = append(results, scored{book: b, score: scoreBook(b, q, t)})
	}

	// 分数降序,同分按书名字典序升序
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].book.Title < results[j].book.Title
	})

	books := make([]*book.Book, len(results))
	for i, r := range results {
		books[i] = r.book
	}
	return books, nil
}

// scoreBook 计算单本书的相关度分值
// 档位互斥:按优先级从高到低检查,命中即返回(取最高适用档)
// q为小写原文查询,t为音译查询;音译字段入库时已是小写罗马化形式
func scoreBook(b *book.Book, q, t string) int {
	title := strings.ToLower(b.Title)
	author := strings.ToLower(b.Author)
	language := strings.ToLower(b.Language)

	switch {
	case title == q:
		return scoreExactTitle
	case b.TransliteratedTitle == t:
		return scoreExactTranslitTitle
	case author == q:
		return scoreExactAuthor
	case b.TransliteratedAuthor == t:
		return scoreExactTranslitAuth
	case strings.Contains(title, q):
		return scoreSubstrTitle
	case strings.Contains(b.TransliteratedTitle, t):
		return scoreSubstrTranslitT
	case strings.Contains(author, q):
		return scoreSubstrAuthor
	case strings.Contains(b.TransliteratedAuthor, t):
		return scoreSubstrTranslitA
	case strings.Contains(language, q):
		return scoreSubstrLanguage
	default:
		// 候选集过滤下不应出现,零分兜底排在最后
		return 0
	}
}
