package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mintmark/mintmark/pkg/importer"
)

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		p := newPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
		got := p.Confirm(context.Background(), "Add unknown country?")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestPrompter_Decide(t *testing.T) {
	tests := []struct {
		input   string
		want    importer.Decision
		wantAll bool
	}{
		{"r\n", importer.DecisionReplace, false},
		{"replace\n", importer.DecisionReplace, false},
		{"R\n", importer.DecisionReplace, true},
		{"i\n", importer.DecisionIgnore, false},
		{"I\n", importer.DecisionIgnore, true},
		{"c\n", importer.DecisionCancel, false},
		{"", importer.DecisionCancel, false},
		{"x\nr\n", importer.DecisionReplace, false},
	}

	prompt := importer.DuplicatePrompt{ExternalID: 420, Title: "1 Drachma"}
	for _, tt := range tests {
		p := newPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
		got, all := p.Decide(context.Background(), prompt)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.wantAll, all, "input %q", tt.input)
	}
}
