package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"bralign/internal/verify"
)

func TestBuildDiff(t *testing.T) {
	tests := []struct {
		name        string
		refOrder    []string
		targetOrder []string
		want        DiffStats
	}{
		{
			name:        "overlap with extras on both sides",
			refOrder:    []string{"X", "Y", "Z"},
			targetOrder: []string{"Y", "X", "W"},
			want: DiffStats{
				Common:          2,
				OnlyInReference: []string{"Z"},
				OnlyInTarget:    []string{"W"},
			},
		},
		{
			name:        "identical",
			refOrder:    []string{"A", "B"},
			targetOrder: []string{"B", "A"},
			want:        DiffStats{Common: 2},
		},
		{
			name:        "disjoint preserves each file's order",
			refOrder:    []string{"B", "A"},
			targetOrder: []string{"D", "C"},
			want: DiffStats{
				OnlyInReference: []string{"B", "A"},
				OnlyInTarget:    []string{"D", "C"},
			},
		},
		{
			name: "both empty",
			want: DiffStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDiff(tt.refOrder, tt.targetOrder)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildDiff() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRunSummaryPass(t *testing.T) {
	s := &RunSummary{}
	if !s.Pass() {
		t.Error("summary with no outputs should pass")
	}

	s.Outputs = append(s.Outputs, &verify.Result{ExpectedModules: 2, ActualModules: 2})
	if !s.Pass() {
		t.Error("clean output should pass")
	}

	s.Outputs = append(s.Outputs, &verify.Result{ExpectedModules: 2, ActualModules: 1})
	if s.Pass() {
		t.Error("one failed output must fail the summary")
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"human", "json", "yaml"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) expected error")
	}
}

func testSummary() *RunSummary {
	return &RunSummary{
		Reference: FileStats{Path: "ref.txt", Modules: 3},
		Target:    FileStats{Path: "target.txt", Modules: 3},
		Diff: DiffStats{
			Common:       2,
			OnlyInTarget: []string{"W"},
		},
		Outputs: []*verify.Result{
			{Output: "out.txt", ExpectedModules: 3, ActualModules: 3},
		},
	}
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := testSummary().Encode(&buf, JSONFormat); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded RunSummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Reference.Path != "ref.txt" || decoded.Diff.Common != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Outputs) != 1 || decoded.Outputs[0].Output != "out.txt" {
		t.Errorf("outputs = %+v", decoded.Outputs)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	for _, format := range []Format{JSONFormat, YAMLFormat, HumanFormat} {
		t.Run(string(format), func(t *testing.T) {
			var a, b bytes.Buffer
			if err := testSummary().Encode(&a, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if err := testSummary().Encode(&b, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if a.String() != b.String() {
				t.Error("two encodings of the same summary differ")
			}
		})
	}
}

func TestWriteHumanStatistics(t *testing.T) {
	var buf bytes.Buffer
	testSummary().WriteHuman(&buf)
	text := buf.String()

	for _, want := range []string{
		"Common modules: 2",
		"Only in ref.txt: 0",
		"Only in target.txt: 1",
		"- W",
		"VERIFICATION",
		"Module count: 3 (expected: 3) OK",
		"all 3 modules verified OK",
		"All verifications passed.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("human output missing %q:\n%s", want, text)
		}
	}
}

func TestWriteHumanOnlyListBounded(t *testing.T) {
	s := testSummary()
	s.Outputs = nil
	for i := 0; i < MaxListed+5; i++ {
		s.Diff.OnlyInTarget = append(s.Diff.OnlyInTarget, fmt.Sprintf("Extra%02d", i))
	}

	var buf bytes.Buffer
	s.WriteHuman(&buf)
	text := buf.String()

	if got := strings.Count(text, "    - "); got != MaxListed {
		t.Errorf("listed %d modules, want %d", got, MaxListed)
	}
	if strings.Contains(text, "VERIFICATION") {
		t.Error("verification section printed without outputs")
	}
}

func TestWriteVerifyHumanMismatch(t *testing.T) {
	result := &verify.Result{
		Output:          "out.txt",
		ExpectedModules: 2,
		ActualModules:   2,
		MismatchTotal:   1,
		Mismatches: []verify.Mismatch{
			{Module: "A", Expected: 2, Actual: 1},
		},
	}

	var buf bytes.Buffer
	WriteVerifyHuman(&buf, result)
	text := buf.String()

	for _, want := range []string{
		"Module count: 2 (expected: 2) OK",
		"Library count mismatches: 1 modules FAILED",
		"- A: 1 (expected: 2)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestWriteVerifyHumanModuleCountMismatch(t *testing.T) {
	result := &verify.Result{Output: "out.txt", ExpectedModules: 3, ActualModules: 2}

	var buf bytes.Buffer
	WriteVerifyHuman(&buf, result)

	if !strings.Contains(buf.String(), "Module count: 2 (expected: 3) MISMATCH") {
		t.Errorf("output = %q", buf.String())
	}
}
