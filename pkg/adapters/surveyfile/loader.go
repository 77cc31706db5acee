// Package surveyfile loads a whole survey from one YAML or JSON document.
package surveyfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/surveyflow/surveyflow/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk layout of a survey file.
type Document struct {
	Start     string            `json:"start" yaml:"start"`
	Labels    map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Questions []domain.Question `json:"questions" yaml:"questions"`
}

// Loader implements ports.GraphLoader and ports.LabelSource for a survey file.
type Loader struct {
	path string
	doc  *Document
}

// New creates a loader for path. The format is picked by extension:
// .json is JSON, anything else is YAML.
func New(path string) *Loader {
	return &Loader{path: path}
}

// LoadGraph reads and decodes the file on every call.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file: %w", err)
	}

	doc, err := Decode(data, strings.EqualFold(filepath.Ext(l.path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	g, err := doc.Graph()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	l.doc = doc
	return g, nil
}

// Labels returns the label catalog of the last loaded file.
func (l *Loader) Labels() map[string]string {
	if l.doc == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(l.doc.Labels))
	for k, v := range l.doc.Labels {
		out[k] = v
	}
	return out
}

// Decode parses a survey document. Unknown fields are rejected so typos in
// field names do not silently drop branching rules.
func Decode(data []byte, isJSON bool) (*Document, error) {
	var doc Document
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	}
	return &doc, nil
}

// Graph builds the graph, defaulting the start to the first question.
func (d *Document) Graph() (*domain.Graph, error) {
	start := d.Start
	if start == "" && len(d.Questions) > 0 {
		start = d.Questions[0].ID
	}
	for i, q := range d.Questions {
		if q.Kind == "" {
			d.Questions[i].Kind = domain.KindFree
			continue
		}
		if !q.Kind.Valid() {
			return nil, fmt.Errorf("question %s: unsupported kind %q", q.ID, q.Kind)
		}
	}
	return domain.NewGraph(start, d.Questions...)
}

// Encode writes a graph and its labels back in the given format.
func Encode(g *domain.Graph, labels map[string]string, asJSON bool) ([]byte, error) {
	doc := Document{
		Start:     g.StartID(),
		Labels:    labels,
		Questions: g.Questions(),
	}
	if asJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
