package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// A nil client means caching is disabled; every helper must be a no-op.
func TestCacheDisabled(t *testing.T) {
	ctx := context.Background()

	var dest []string
	found, err := GetCache(ctx, nil, "key", &dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetCache(ctx, nil, "key", []string{"a"}, time.Second))
	assert.NoError(t, DeleteCache(ctx, nil, "key"))
}
