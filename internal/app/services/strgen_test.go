package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slugline/internal/app/services"
)

const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestStdRandStringGenerator(t *testing.T) {
	generator := services.StdRandStringGenerator{}

	for _, n := range []int{services.SlugLen, services.SuffixLen} {
		result, err := generator.Call(n)
		require.NoError(t, err)
		assert.Len(t, result, n)
		for _, char := range result {
			assert.True(t, strings.ContainsRune(urlSafeAlphabet, char),
				"unexpected character %q", char)
		}
	}

	first, err := generator.Call(services.SlugLen)
	require.NoError(t, err)
	second, err := generator.Call(services.SlugLen)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
