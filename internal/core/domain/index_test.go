package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(file, summary string) SummaryRecord {
	return SummaryRecord{File: file, Summary: summary}
}

func summaries(records []SummaryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.File + ":" + r.Summary
	}
	return out
}

func TestApplyPolicy(t *testing.T) {
	existing := []SummaryRecord{rec("/a", "a1"), rec("/b", "b1")}
	incoming := []SummaryRecord{rec("/c", "c2"), rec("/a", "a2")}

	tests := []struct {
		name   string
		policy IndexPolicy
		want   []string
	}{
		{"append keeps history", PolicyAppend, []string{"/a:a1", "/b:b1", "/c:c2", "/a:a2"}},
		{"replace supersedes in place", PolicyReplace, []string{"/a:a2", "/b:b1", "/c:c2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summaries(ApplyPolicy(existing, incoming, tt.policy)))
		})
	}
}

func TestApplyPolicy_ReplaceCollapsesHistoricalDuplicates(t *testing.T) {
	existing := []SummaryRecord{rec("/a", "a1"), rec("/b", "b1"), rec("/a", "a2")}

	got := ApplyPolicy(existing, []SummaryRecord{rec("/a", "a3")}, PolicyReplace)

	assert.Equal(t, []string{"/a:a3", "/b:b1"}, summaries(got))
}

func TestApplyPolicy_DoesNotMutateInputs(t *testing.T) {
	existing := []SummaryRecord{rec("/a", "a1")}
	incoming := []SummaryRecord{rec("/a", "a2")}

	_ = ApplyPolicy(existing, incoming, PolicyReplace)

	assert.Equal(t, "a1", existing[0].Summary)
}

func TestApplyPolicy_Empty(t *testing.T) {
	assert.Empty(t, ApplyPolicy(nil, nil, PolicyAppend))
	assert.Empty(t, ApplyPolicy(nil, nil, PolicyReplace))
}
