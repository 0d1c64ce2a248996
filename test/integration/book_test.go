package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试:上架参数边界

// TestAddBookZeroPrice 价格为0的免费图书允许上架,负价格被拒绝
func TestAddBookZeroPrice(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)

	title := fmt.Sprintf("Free Pamphlet %d", time.Now().UnixNano()%1e9)
	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":    title,
		"author":   "Anon",
		"price":    0,
		"stock":    5,
		"language": "English",
	}, adminToken)
	require.Equal(t, 0, resp.Code, "价格为0的图书上架失败: %s", resp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book))
	require.NotZero(t, book.ID)

	detail := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, book.ID), "")
	require.Equal(t, 0, detail.Code)

	var got BookData
	require.NoError(t, json.Unmarshal(detail.Data, &got))
	assert.Equal(t, int64(0), got.Price)

	bad := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":  "Bad Price",
		"author": "Anon",
		"price":  -1,
		"stock":  5,
	}, adminToken)
	assert.NotEqual(t, 0, bad.Code, "负价格应被拒绝")
}
