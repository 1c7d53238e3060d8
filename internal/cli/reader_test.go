package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{
			name:          "successful read",
			input:         "كم جمارك مودم\n",
			expectedValue: "كم جمارك مودم",
		},
		{
			name:          "read with extra whitespace",
			input:         "  سعر الثلاجة  \n",
			expectedValue: "سعر الثلاجة",
		},
		{
			name:          "last line without newline",
			input:         "بند ملابس",
			expectedValue: "بند ملابس",
		},
		{
			name:          "empty line",
			input:         "\n",
			expectedValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLineReader(strings.NewReader(tt.input))
			got, err := r.ReadLine(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, got)
		})
	}
}

func TestLineReader_EOF(t *testing.T) {
	r := NewLineReader(strings.NewReader(""))
	_, err := r.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_ContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	r := NewLineReader(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestLineReader_ReadQueries(t *testing.T) {
	input := "# prices\nكم جمارك مودم\n\n  سعر الثلاجة\n#done\n"
	r := NewLineReader(strings.NewReader(input))

	queries, err := r.ReadQueries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"كم جمارك مودم", "سعر الثلاجة"}, queries)
}

func TestNewLineReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewLineReader(nil) })
}
