package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

type catalog map[string]string

func (c catalog) Label(ref string) string {
	if text, ok := c[ref]; ok {
		return text
	}
	return ref
}

func TestNewPrompt_YesNoLabels(t *testing.T) {
	tests := []struct {
		name   string
		q      domain.Question
		labels catalog
		want   []Choice
	}{
		{
			name: "plain words when nothing is labelled",
			q:    domain.Question{ID: "q", Kind: domain.KindYesNo},
			want: []Choice{{Key: "yes", Label: "Yes"}, {Key: "no", Label: "No"}},
		},
		{
			name:   "catalog entry for the key",
			q:      domain.Question{ID: "q", Kind: domain.KindYesNo},
			labels: catalog{"yes": "Sim", "no": "Não"},
			want:   []Choice{{Key: "yes", Label: "Sim"}, {Key: "no", Label: "Não"}},
		},
		{
			name:   "explicit labels resolved through the catalog",
			q:      domain.Question{ID: "q", Kind: domain.KindYesNo, YesKey: "y", NoKey: "n", YesLabel: "lbl.y", NoLabel: "Nope"},
			labels: catalog{"lbl.y": "Sure"},
			want:   []Choice{{Key: "y", Label: "Sure"}, {Key: "n", Label: "Nope"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompt(tt.q, tt.labels)
			assert.Equal(t, tt.want, p.Choices)
		})
	}
}
