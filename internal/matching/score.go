// Package matching implements the local compatibility score between a
// candidate's skill set and a job's required skills. It is deliberately
// coarse: case-insensitive set overlap, no weighting, no synonym resolution.
// Semantic matching is the external AI service's job, not ours.
package matching

import (
	"math"
	"strings"
)

// Score returns the integer percentage of the job's required skills that the
// candidate covers, rounded to nearest. An empty requirement list scores 0 by
// definition, not undefined. The result is always within [0, 100].
func Score(candidateSkills, jobSkills []string) int {
	if len(jobSkills) == 0 {
		return 0
	}
	matching := Overlap(candidateSkills, jobSkills)
	return int(math.Round(float64(len(matching)) / float64(len(jobSkills)) * 100))
}

// Overlap returns the candidate skills that appear in the job's requirements,
// compared case-insensitively, preserving the candidate's original casing and
// order. Duplicate candidate entries count once.
func Overlap(candidateSkills, jobSkills []string) []string {
	required := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		required[strings.ToLower(s)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(candidateSkills))
	var matching []string
	for _, s := range candidateSkills {
		key := strings.ToLower(s)
		if _, ok := required[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		matching = append(matching, s)
	}
	return matching
}
