package facts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/greenlie/internal/model"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	catalog, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.Len() == 0 {
		t.Fatal("expected embedded statements")
	}

	for _, s := range catalog.All() {
		if len(s.CriteriaAssessment) != model.CriteriaCount {
			t.Errorf("statement %s has %d criteria, want %d", s.ID, len(s.CriteriaAssessment), model.CriteriaCount)
		}
		for _, c := range model.AllCriteria() {
			if _, ok := s.CriteriaAssessment[c]; !ok {
				t.Errorf("statement %s missing criterion %s", s.ID, c)
			}
		}
	}
}

func TestCatalog_Lookup(t *testing.T) {
	catalog, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, ok := catalog.Lookup("stmt_001")
	if !ok {
		t.Fatal("expected stmt_001 to exist")
	}
	if s.TargetGroup != "Students" {
		t.Errorf("expected Students, got %s", s.TargetGroup)
	}

	if _, ok := catalog.Lookup("stmt_missing"); ok {
		t.Error("expected lookup miss")
	}
}

func TestCatalog_CountByVerdict(t *testing.T) {
	catalog, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := catalog.CountByVerdict()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != catalog.Len() {
		t.Errorf("expected counts to sum to %d, got %d", catalog.Len(), total)
	}
	if counts[model.VerdictDishonest] == 0 {
		t.Error("expected at least one GREEN LIE in the embedded catalog")
	}
}

func TestParse_RejectsMissingCriterion(t *testing.T) {
	data := strings.Replace(string(defaultCatalog), `"enforcement_power"`, `"enforcement"`, 1)
	if _, err := Parse([]byte(data)); err == nil {
		t.Error("expected schema error for renamed criterion")
	}
}

func TestParse_RejectsBadStatus(t *testing.T) {
	data := strings.Replace(string(defaultCatalog), `"status": "available"`, `"status": "mostly"`, 1)
	if _, err := Parse([]byte(data)); err == nil {
		t.Error("expected schema error for unknown status")
	}
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"sustainability_statements": [`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	catalog, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := catalog.All()[0]
	if _, err := New([]model.Statement{first, first}); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	if err := os.WriteFile(path, defaultCatalog, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	catalog, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.Len() == 0 {
		t.Error("expected statements from file")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
