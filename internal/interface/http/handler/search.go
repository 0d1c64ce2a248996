package handler

import (
	"github.com/gin-gonic/gin"

	appsearch "github.com/humaira228/DeenOasis/internal/application/search"
	"github.com/humaira228/DeenOasis/internal/interface/http/dto"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/response"
)

// SearchHandler 图书搜索HTTP处理器
type SearchHandler struct {
	searchUseCase *appsearch.SearchBooksUseCase
}

// NewSearchHandler 创建搜索处理器
func NewSearchHandler(searchUseCase *appsearch.SearchBooksUseCase) *SearchHandler {
	return &SearchHandler{searchUseCase: searchUseCase}
}

// SearchBooks 图书搜索
// @Summary      图书搜索
// @Description  按标题/作者/语言匹配并分级排序,支持音译匹配(如拉丁字母查询非拉丁文书名)
// @Tags         搜索
// @Produce      json
// @Param        query query string true "搜索关键词(兼容q参数名)"
// @Success      200 {object} response.Response{data=appsearch.SearchResponse}
// @Failure      400 {object} response.Response "关键词为空"
// @Router       /api/v1/search-books [get]
func (h *SearchHandler) SearchBooks(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidQuery, "搜索关键词不能为空")
		return
	}

	// 空白关键词由搜索引擎统一拒绝(ErrInvalidQuery)
	result, err := h.searchUseCase.Execute(c.Request.Context(), query.Keyword())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
