package translit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomanize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ASCII原样返回", "Pride and Prejudice", "Pride and Prejudice"},
		{"重音拉丁字母", "Gabriel García Márquez", "Gabriel Garcia Marquez"},
		{"西里尔字母", "Достоевский", "Dostoevskii"},
		{"空字符串", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Romanize(tt.input))
		})
	}
}

func TestFold(t *testing.T) {
	// Fold用于查询匹配：音译+小写，保证大小写不敏感
	assert.Equal(t, "garcia marquez", Fold("García Márquez"))
	assert.Equal(t, "pride", Fold("PRIDE"))
}

// 同一输入必须产生同一音译结果，否则查询与入库字段会错位
func TestRomanize_Deterministic(t *testing.T) {
	input := "Fiódor Dostoyevski"
	first := Romanize(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Romanize(input))
	}
}
