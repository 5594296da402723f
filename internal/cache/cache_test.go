package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectDetailKey(t *testing.T) {
	assert.Equal(t, "project:detail:42", ProjectDetailKey(42))
}

func TestProjectListKey(t *testing.T) {
	key := ProjectListKey("public", 2, 20)

	assert.Equal(t, "project:list:public:2:20", key)
	assert.True(t, strings.HasPrefix(key, ProjectListPrefix))
}

func TestKeyNamespacesDoNotOverlap(t *testing.T) {
	// a list prefix eviction must never take detail entries with it
	assert.False(t, strings.HasPrefix(ProjectDetailKey(1), ProjectListPrefix))
}
