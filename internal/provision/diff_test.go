package provision

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestComputeDiff_Parts(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    []Part
	}{
		{"both empty", "", "", nil},
		{"identical", "a\nb\n", "a\nb\n", []Part{{OpUnchanged, "a\nb\n"}}},
		{"create", "", "x\ny\n", []Part{{OpAdded, "x\ny\n"}}},
		{"delete all", "x\n", "", []Part{{OpRemoved, "x\n"}}},
		{"replace middle", "a\nb\nc\n", "a\nB\nc\n", []Part{
			{OpUnchanged, "a\n"}, {OpRemoved, "b\n"}, {OpAdded, "B\n"}, {OpUnchanged, "c\n"},
		}},
		{"append", "a\n", "a\nb\n", []Part{{OpUnchanged, "a\n"}, {OpAdded, "b\n"}}},
		{"missing final newline differs", "a", "a\n", []Part{{OpRemoved, "a"}, {OpAdded, "a\n"}}},
		{"keeps longest common subsequence", "b\na\nc\nb\nc\na\n", "c\nc\nc\na\nc\n", []Part{
			{OpRemoved, "b\na\n"}, {OpUnchanged, "c\n"}, {OpRemoved, "b\n"}, {OpUnchanged, "c\n"},
			{OpAdded, "c\n"}, {OpUnchanged, "a\n"}, {OpAdded, "c\n"},
		}},
		{"moved line", "x\ny\n", "y\nx\n", []Part{{OpRemoved, "x\n"}, {OpUnchanged, "y\n"}, {OpAdded, "x\n"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDiff(tt.current, tt.next).Parts)
		})
	}
}

func TestComputeDiff_RoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"", "hello\n"},
		{"one\ntwo\nthree\n", "zero\none\nthree\nfour"},
		{"{\n  \"a\": 1\n}\n", "{\n  \"a\": 1,\n  \"b\": 2\n}\n"},
		{"same\n", "same\n"},
	}
	for _, p := range pairs {
		d := ComputeDiff(p[0], p[1])
		assert.Equal(t, p[0], d.Reconstruct(OpRemoved))
		assert.Equal(t, p[1], d.Reconstruct(OpAdded))
	}
}

// lcsLines is the length of the longest common subsequence of lines.
func lcsLines(a, b []string) int {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}
	return dp[0][0]
}

func randomLines(r *rand.Rand, alphabet string) []string {
	lines := make([]string, r.Intn(12))
	for i := range lines {
		lines[i] = string(alphabet[r.Intn(len(alphabet))]) + "\n"
	}
	return lines
}

func TestComputeDiff_UnchangedIsLongestCommonSubsequence(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		a, b := randomLines(r, "abc"), randomLines(r, "abcde")
		current, next := strings.Join(a, ""), strings.Join(b, "")
		d := ComputeDiff(current, next)

		unchanged := 0
		for _, p := range d.Parts {
			if p.Op == OpUnchanged {
				unchanged += strings.Count(p.Value, "\n")
			}
		}
		if !assert.Equal(t, lcsLines(a, b), unchanged, "%q -> %q", current, next) {
			return
		}
		assert.Equal(t, current, d.Reconstruct(OpRemoved))
		assert.Equal(t, next, d.Reconstruct(OpAdded))
	}
}

func TestRender(t *testing.T) {
	d := ComputeDiff("a\nb\n", "a\nc\n")
	assert.Equal(t, "  a\n\n- b\n\n+ c\n", d.Text)

	assert.Equal(t, "\n+ new\n", ComputeDiff("", "new\n").Text)
	assert.Equal(t, "", Render(nil))
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "added", OpAdded.String())
	assert.Equal(t, "removed", OpRemoved.String())
	assert.Equal(t, "unchanged", OpUnchanged.String())
}
