package audit

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/zarlcorp/zaudit/internal/generator"
	"github.com/zarlcorp/zaudit/internal/strength"
)

func TestAudit(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		wantScore int
		wantTips  int
		wantBits  float64
	}{
		{"empty", "", 0, 5, 0},
		{"weak", "abc", 20, 4, 3 * math.Log2(26)},
		{"strong", "Sup3r-Secret!", 100, 0, 13 * math.Log2(82)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Audit(tt.secret)
			if r.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", r.Score, tt.wantScore)
			}
			if len(r.Tips) != tt.wantTips {
				t.Errorf("tips = %q, want %d", r.Tips, tt.wantTips)
			}
			if math.Abs(r.EntropyBits-tt.wantBits) > 1e-9 {
				t.Errorf("entropy = %f, want %f", r.EntropyBits, tt.wantBits)
			}
		})
	}
}

func TestAuditRecomputable(t *testing.T) {
	for _, s := range []string{"", "hunter2", "Tr0ub4dor&3", "correct horse battery staple"} {
		a := Audit(s)
		b := Audit(s)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Audit(%q) not deterministic: %+v vs %+v", s, a, b)
		}

		checks, score, tips := strength.Score(s)
		if !reflect.DeepEqual(a.Checks, checks) || a.Score != score || !reflect.DeepEqual(a.Tips, tips) {
			t.Errorf("Audit(%q) differs from its components", s)
		}
		if a.EntropyBits != strength.Entropy(s) {
			t.Errorf("Audit(%q) entropy differs from estimator", s)
		}
	}
}

func TestGenerateAndAudit(t *testing.T) {
	pw, r, err := GenerateAndAudit(24, generator.DefaultPool())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pw) != 24 {
		t.Errorf("length = %d, want 24", len(pw))
	}
	if !reflect.DeepEqual(r, Audit(pw)) {
		t.Error("result should equal auditing the generated password")
	}
	if r.Score < 20 {
		t.Errorf("24 characters should at least pass the length check, got %d", r.Score)
	}
}

func TestGenerateAndAuditPropagatesError(t *testing.T) {
	pw, r, err := GenerateAndAudit(16, generator.Pool{})
	if !errors.Is(err, generator.ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
	if pw != "" || r.Score != 0 || r.Tips != nil {
		t.Errorf("expected zero values on error, got %q %+v", pw, r)
	}
}

func TestCheckList(t *testing.T) {
	r := Audit("abcdefghijkl")
	got := r.CheckList()
	want := []CheckState{
		{"Has Uppercase", false},
		{"Has Lowercase", true},
		{"Has Digit", false},
		{"Has Symbol", false},
		{"Length ≥ 12", true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CheckList() = %+v, want %+v", got, want)
	}
}
