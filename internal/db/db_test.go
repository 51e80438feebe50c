package db

import (
	"strings"
	"testing"
)

// La garde anti double réservation est posée une seule fois (contrôle
// pg_constraint par nom) : le DDL doit porter exactement le nom contrôlé.
func TestNoOverlapConstraintDDL(t *testing.T) {
	if !strings.Contains(noOverlapConstraintDDL, "ADD CONSTRAINT "+noOverlapConstraintName) {
		t.Fatalf("le DDL ne nomme pas %q: %s", noOverlapConstraintName, noOverlapConstraintDDL)
	}

	for _, fragment := range []string{
		"EXCLUDE USING gist",
		"doctor_id WITH =",
		"tsrange(start_time, end_time) WITH &&",
		"status <> 'cancelled'",
		"deleted_at IS NULL",
	} {
		if !strings.Contains(noOverlapConstraintDDL, fragment) {
			t.Fatalf("fragment %q absent du DDL: %s", fragment, noOverlapConstraintDDL)
		}
	}
}
