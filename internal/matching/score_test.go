package matching_test

import (
	"testing"

	"go-talentmatch-backend/internal/matching"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		job       []string
		want      int
	}{
		{
			name:      "half of requirements covered case-insensitively",
			candidate: []string{"react", "python"},
			job:       []string{"React", "Node.js"},
			want:      50,
		},
		{
			name:      "full coverage",
			candidate: []string{"go", "POSTGRES", "Docker"},
			job:       []string{"Go", "Postgres", "docker"},
			want:      100,
		},
		{
			name:      "no overlap",
			candidate: []string{"php"},
			job:       []string{"Go", "Rust"},
			want:      0,
		},
		{
			name:      "empty job requirements score zero not undefined",
			candidate: []string{"go"},
			job:       nil,
			want:      0,
		},
		{
			name:      "empty candidate skills",
			candidate: nil,
			job:       []string{"Go"},
			want:      0,
		},
		{
			name:      "both empty",
			candidate: nil,
			job:       nil,
			want:      0,
		},
		{
			name:      "duplicate candidate entries count once",
			candidate: []string{"React", "react", "REACT"},
			job:       []string{"React", "Node.js"},
			want:      50,
		},
		{
			name:      "rounding to nearest",
			candidate: []string{"a"},
			job:       []string{"a", "b", "c"}, // 33.33 -> 33
			want:      33,
		},
		{
			name:      "rounding up",
			candidate: []string{"a", "b"},
			job:       []string{"a", "b", "c"}, // 66.67 -> 67
			want:      67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.Score(tt.candidate, tt.job)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestScoreIsHundredOnlyOnFullCoverage(t *testing.T) {
	job := []string{"Go", "Postgres"}

	assert.Equal(t, 100, matching.Score([]string{"go", "postgres", "extra"}, job))
	assert.NotEqual(t, 100, matching.Score([]string{"go"}, job))
}

func TestOverlap(t *testing.T) {
	t.Run("preserves candidate casing and order", func(t *testing.T) {
		got := matching.Overlap([]string{"Python", "React", "SQL"}, []string{"react", "sql"})
		assert.Equal(t, []string{"React", "SQL"}, got)
	})

	t.Run("empty inputs yield nil", func(t *testing.T) {
		assert.Empty(t, matching.Overlap(nil, []string{"go"}))
		assert.Empty(t, matching.Overlap([]string{"go"}, nil))
	})
}
