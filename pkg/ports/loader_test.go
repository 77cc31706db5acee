package ports_test

import (
	"testing"

	"github.com/surveyflow/surveyflow/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestResolveLabel(t *testing.T) {
	labels := map[string]string{"q.crop": "Which crop?", "q.empty": ""}

	assert.Equal(t, "Which crop?", ports.ResolveLabel(labels, "q.crop"))
	assert.Equal(t, "q.empty", ports.ResolveLabel(labels, "q.empty"))
	assert.Equal(t, "q.missing", ports.ResolveLabel(labels, "q.missing"))
	assert.Equal(t, "x", ports.ResolveLabel(nil, "x"))
}
