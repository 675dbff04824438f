package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCodes(t *testing.T) {
	code := GenerateReferralCode()
	assert.Len(t, code, 8)
	for _, ch := range code {
		assert.Contains(t, codeCharacters, string(ch))
	}

	assert.Len(t, GenerateTrxNo(), 7)
}

func TestPaginateResponse(t *testing.T) {
	res := PaginateResponse([]int{1, 2}, 5, 1, 2, "")
	assert.Equal(t, "success", res.Message)
	assert.Equal(t, int64(5), res.Count)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 2, res.NextPage)
	assert.Equal(t, 0, res.PrevPage)
	assert.Equal(t, 3, res.LastPage)

	res = PaginateResponse(nil, 5, 3, 2, "done")
	assert.Equal(t, "done", res.Message)
	assert.Equal(t, 0, res.NextPage)
	assert.Equal(t, 2, res.PrevPage)
}
