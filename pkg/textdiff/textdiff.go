// Package textdiff renders line-based unified diffs. The fmt command uses it
// to show what a rewrite would change without touching the file.
package textdiff

import (
	"fmt"
	"strings"
)

// context is the number of unchanged lines shown around each change.
const context = 3

// OpKind classifies a line in an edit script.
type OpKind int

const (
	OpEqual OpKind = iota
	OpInsert
	OpDelete
)

// Op is one line of an edit script.
type Op struct {
	Kind OpKind
	Line string
}

// Hunk is a contiguous run of ops with surrounding context.
type Hunk struct {
	// BeforeStart and AfterStart are 1-based line numbers.
	BeforeStart, BeforeLen int
	AfterStart, AfterLen   int
	Ops                    []Op
}

// Diff is the line difference between two versions of one file.
type Diff struct {
	Path       string
	Hunks      []Hunk
	Insertions int
	Deletions  int
}

// Compute returns the diff between before and after, or nil if their lines
// are identical.
func Compute(path, before, after string) *Diff {
	a, b := lines(before), lines(after)
	script := editScript(a, b)

	diff := &Diff{Path: path}
	for _, op := range script {
		switch op.Kind {
		case OpInsert:
			diff.Insertions++
		case OpDelete:
			diff.Deletions++
		}
	}
	if diff.Insertions == 0 && diff.Deletions == 0 {
		return nil
	}

	diff.Hunks = hunks(script)
	return diff
}

// Empty reports whether d carries no changes.
func (d *Diff) Empty() bool {
	return d == nil || len(d.Hunks) == 0
}

// String renders d in unified format with a/ and b/ path prefixes.
func (d *Diff) String() string {
	if d.Empty() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.BeforeStart, h.BeforeLen, h.AfterStart, h.AfterLen)
		for _, op := range h.Ops {
			switch op.Kind {
			case OpEqual:
				sb.WriteByte(' ')
			case OpInsert:
				sb.WriteByte('+')
			case OpDelete:
				sb.WriteByte('-')
			}
			sb.WriteString(op.Line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// lines splits s on "\n", dropping the empty element after a final newline.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	out := strings.Split(s, "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// editScript computes a minimal line edit script from the LCS table.
// Deletions are emitted before insertions within a change.
func editScript(a, b []string) []Op {
	n, m := len(a), len(b)

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]Op, 0, max(n, m))
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			script = append(script, Op{OpEqual, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			script = append(script, Op{OpDelete, a[i]})
			i++
		default:
			script = append(script, Op{OpInsert, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		script = append(script, Op{OpDelete, a[i]})
	}
	for ; j < m; j++ {
		script = append(script, Op{OpInsert, b[j]})
	}
	return script
}

// hunks groups the script into hunks, merging changes whose context overlaps.
func hunks(script []Op) []Hunk {
	var out []Hunk

	// Line numbers before script[k], per side.
	beforeLine := make([]int, len(script)+1)
	afterLine := make([]int, len(script)+1)
	for k, op := range script {
		beforeLine[k+1] = beforeLine[k]
		afterLine[k+1] = afterLine[k]
		if op.Kind != OpInsert {
			beforeLine[k+1]++
		}
		if op.Kind != OpDelete {
			afterLine[k+1]++
		}
	}

	k := 0
	for k < len(script) {
		if script[k].Kind == OpEqual {
			k++
			continue
		}

		start := max(k-context, 0)
		end := k
		// Extend while the next change is within 2*context equal lines.
		for end < len(script) {
			if script[end].Kind != OpEqual {
				end++
				continue
			}
			run := end
			for run < len(script) && script[run].Kind == OpEqual {
				run++
			}
			if run == len(script) || run-end > 2*context {
				end = min(end+context, len(script))
				break
			}
			end = run
		}

		h := Hunk{
			BeforeStart: beforeLine[start] + 1,
			AfterStart:  afterLine[start] + 1,
			BeforeLen:   beforeLine[end] - beforeLine[start],
			AfterLen:    afterLine[end] - afterLine[start],
			Ops:         script[start:end],
		}
		// Unified format numbers an empty side by the line before it.
		if h.BeforeLen == 0 {
			h.BeforeStart--
		}
		if h.AfterLen == 0 {
			h.AfterStart--
		}
		out = append(out, h)
		k = end
	}
	return out
}
