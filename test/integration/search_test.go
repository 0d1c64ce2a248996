package integration

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 搜索模块集成测试:分级排序与音译匹配

func searchBooks(t *testing.T, query string) *Response {
	t.Helper()
	return GetJSON(t, BaseURL+"/search-books?query="+url.QueryEscape(query), "")
}

func TestSearchBooks(t *testing.T) {
	RequireServer(t)

	t.Run("空关键词被拒绝", func(t *testing.T) {
		resp := searchBooks(t, "   ")
		assert.NotEqual(t, 0, resp.Code, "空白关键词应报错")
	})

	t.Run("query与q参数名都可用", func(t *testing.T) {
		adminToken := LoginAdmin(t)

		marker := fmt.Sprintf("alias%d", time.Now().UnixNano()%1e9)
		bookID := PublishTestBook(t, adminToken, marker+" Stories", 9000, 5)

		for _, param := range []string{"query", "q"} {
			result := GetJSON(t, BaseURL+"/search-books?"+param+"="+url.QueryEscape(marker), "")
			require.Equal(t, 0, result.Code, "%s参数搜索失败: %s", param, result.Message)

			var data SearchData
			require.NoError(t, json.Unmarshal(result.Data, &data))
			require.NotEmpty(t, data.List)
			assert.Equal(t, bookID, data.List[0].ID)
		}
	})

	t.Run("标题命中排在作者命中之前", func(t *testing.T) {
		adminToken := LoginAdmin(t)

		// 同一个关键词,一本标题包含,一本仅作者包含
		marker := fmt.Sprintf("tier%d", time.Now().UnixNano()%1e9)
		titleHit := PublishTestBook(t, adminToken, fmt.Sprintf("%s Songs", marker), 10000, 5)
		PublishTestBook(t, adminToken, "Collected Poems", 10000, 5)

		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":    "Selected Letters",
			"author":   marker + " Society",
			"price":    10000,
			"stock":    5,
			"language": "English",
		}, adminToken)
		require.Equal(t, 0, resp.Code)
		var authorBook BookData
		require.NoError(t, json.Unmarshal(resp.Data, &authorBook))

		result := searchBooks(t, marker)
		require.Equal(t, 0, result.Code, "搜索失败: %s", result.Message)

		var data SearchData
		require.NoError(t, json.Unmarshal(result.Data, &data))
		require.GreaterOrEqual(t, data.Total, 2)

		// 标题包含档高于作者包含档
		assert.Equal(t, titleHit, data.List[0].ID)
		assert.Equal(t, authorBook.ID, data.List[1].ID)
	})

	t.Run("罗马化查询命中原文书名", func(t *testing.T) {
		adminToken := LoginAdmin(t)

		// 孟加拉文书名,入库时派生音译字段
		bookID := PublishTestBook(t, adminToken, "রবীন্দ্রনাথ রচনাবলী", 20000, 3)

		result := searchBooks(t, "rabindranath")
		require.Equal(t, 0, result.Code)

		var data SearchData
		require.NoError(t, json.Unmarshal(result.Data, &data))

		found := false
		for _, item := range data.List {
			if item.ID == bookID {
				found = true
			}
		}
		assert.True(t, found, "罗马化查询应命中孟加拉文书名")
	})
}
