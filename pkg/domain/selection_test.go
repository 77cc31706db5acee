package domain_test

import (
	"testing"

	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"a", []string{"a"}},
		{"a,c", []string{"a", "c"}},
		{" c , a ,", []string{"c", "a"}},
		{"a,a,b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseSelection(tt.raw))
		})
	}
}

func TestFormatSelection(t *testing.T) {
	assert.Equal(t, "a,c", domain.FormatSelection("a", " c", "", "a"))
	assert.Equal(t, "", domain.FormatSelection())
}
