package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/translit"
)

// fakeBookRepo 内存仓储,候选集过滤逻辑与MySQL实现保持一致
type fakeBookRepo struct {
	book.Repository // 未用到的方法直接panic,测试只依赖SearchCandidates
	books           []*book.Book
}

func (r *fakeBookRepo) SearchCandidates(ctx context.Context, q, t string) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range r.books {
		title := strings.ToLower(b.Title)
		author := strings.ToLower(b.Author)
		language := strings.ToLower(b.Language)
		if strings.Contains(title, q) || strings.Contains(author, q) || strings.Contains(language, q) ||
			strings.Contains(b.TransliteratedTitle, t) || strings.Contains(b.TransliteratedAuthor, t) {
			out = append(out, b)
		}
	}
	return out, nil
}

// newBook 构造测试图书,音译字段按入库逻辑派生
func newBook(id uint, title, author, language string) *book.Book {
	return &book.Book{
		ID:                   id,
		Title:                title,
		TransliteratedTitle:  translit.Fold(title),
		Author:               author,
		TransliteratedAuthor: translit.Fold(author),
		Language:             language,
	}
}

func TestEngine_Search_EmptyQuery(t *testing.T) {
	e := NewEngine(&fakeBookRepo{})

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := e.Search(context.Background(), query)
		assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)
	}
}

// TestEngine_Search_TierOrdering 测试档位优先级:
// 标题命中排在作者命中之前,作者命中排在语言命中之前
func TestEngine_Search_TierOrdering(t *testing.T) {
	repo := &fakeBookRepo{books: []*book.Book{
		newBook(1, "Bengali Grammar", "Unknown", "English"),       // 标题包含
		newBook(2, "Gitanjali", "Rabindranath Tagore", "Bengali"), // 语言包含
		newBook(3, "Folk Tales", "Bengali Academy", "English"),    // 作者包含
	}}
	e := NewEngine(repo)

	books, err := e.Search(context.Background(), "bengali")
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, uint(1), books[0].ID) // 标题包含(60)
	assert.Equal(t, uint(3), books[1].ID) // 作者包含(40)
	assert.Equal(t, uint(2), books[2].ID) // 语言包含(20)
}

// TestEngine_Search_ExactBeatsSubstring 精确匹配高于包含匹配
func TestEngine_Search_ExactBeatsSubstring(t *testing.T) {
	repo := &fakeBookRepo{books: []*book.Book{
		newBook(1, "Gitanjali Revisited", "Someone", "English"), // 标题包含
		newBook(2, "Gitanjali", "Rabindranath Tagore", "Bengali"), // 标题精确
	}}
	e := NewEngine(repo)

	books, err := e.Search(context.Background(), "Gitanjali")
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, uint(2), books[0].ID)
	assert.Equal(t, uint(1), books[1].ID)
}

// TestEngine_Search_TransliteratedQuery 罗马化查询命中原文书名
// 场景:目录含孟加拉文书名,查询用罗马化拼写
func TestEngine_Search_TransliteratedQuery(t *testing.T) {
	repo := &fakeBookRepo{books: []*book.Book{
		newBook(1, "Gora", "Rabíndranath Tagore", "Bengali"),     // 音译作者命中(重音字母romanize后才包含查询)
		newBook(2, "Rabindranath Rachanabali", "---", "Bengali"), // 标题包含命中
	}}
	e := NewEngine(repo)

	books, err := e.Search(context.Background(), "rabindranath")
	require.NoError(t, err)
	require.Len(t, books, 2)

	// 标题档(包含,60)高于任何作者档
	assert.Equal(t, "Rabindranath Rachanabali", books[0].Title)
}

// TestEngine_Search_TieBreakByTitle 同分按书名升序
func TestEngine_Search_TieBreakByTitle(t *testing.T) {
	repo := &fakeBookRepo{books: []*book.Book{
		newBook(1, "Zebra Stories of Bengal", "A", "English"),
		newBook(2, "Bengal Nights", "B", "English"),
		newBook(3, "Mother Bengal", "C", "English"),
	}}
	e := NewEngine(repo)

	books, err := e.Search(context.Background(), "bengal")
	require.NoError(t, err)
	require.Len(t, books, 3)

	// 三本书都是标题包含档(60),按书名字典序
	assert.Equal(t, "Bengal Nights", books[0].Title)
	assert.Equal(t, "Mother Bengal", books[1].Title)
	assert.Equal(t, "Zebra Stories of Bengal", books[2].Title)
}

// TestEngine_Search_Deterministic 固定数据与查询下结果确定
func TestEngine_Search_Deterministic(t *testing.T) {
	repo := &fakeBookRepo{books: []*book.Book{
		newBook(1, "Gitanjali", "Rabindranath Tagore", "Bengali"),
		newBook(2, "Gora", "Rabindranath Tagore", "Bengali"),
		newBook(3, "Chokher Bali", "Rabindranath Tagore", "Bengali"),
	}}
	e := NewEngine(repo)

	first, err := e.Search(context.Background(), "tagore")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := e.Search(context.Background(), "tagore")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestScoreBook_Tiers 逐档校验分值
func TestScoreBook_Tiers(t *testing.T) {
	b := newBook(1, "Gitanjali", "Rabindranath Tagore", "Bengali")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"标题精确", "gitanjali", scoreExactTitle},
		{"作者精确", "rabindranath tagore", scoreExactAuthor},
		{"标题包含", "gitan", scoreSubstrTitle},
		{"作者包含", "tagore", scoreSubstrAuthor},
		{"语言包含", "beng", scoreSubstrLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := strings.ToLower(tt.query)
			assert.Equal(t, tt.want, scoreBook(b, q, translit.Fold(tt.query)))
		})
	}
}

// TestScoreBook_TranslitTiers 音译档分值
func TestScoreBook_TranslitTiers(t *testing.T) {
	// 西里尔文书名/作者,音译字段为罗马化形式
	b := newBook(1, "Идиот", "Достоевский", "Russian")

	q := "idiot"
	assert.Equal(t, scoreExactTranslitTitle, scoreBook(b, q, translit.Fold(q)))

	q = "dostoevskii"
	assert.Equal(t, scoreExactTranslitAuth, scoreBook(b, q, translit.Fold(q)))

	q = "dostoev"
	assert.Equal(t, scoreSubstrTranslitA, scoreBook(b, q, translit.Fold(q)))
}
