package postgres

import "testing"

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "string literal masked",
			query: "SELECT id FROM transactions WHERE item = 'almoço'",
			want:  "SELECT id FROM transactions WHERE item = '?'",
		},
		{
			name:  "numeric literal masked",
			query: "SELECT id FROM transactions LIMIT 50",
			want:  "SELECT id FROM transactions LIMIT ?",
		},
		{
			name:  "placeholders untouched",
			query: "SELECT id FROM transactions WHERE user_id = $1 AND valor > $2",
			want:  "SELECT id FROM transactions WHERE user_id = $1 AND valor > $2",
		},
		{
			name:  "escaped quote inside literal",
			query: "UPDATE transactions SET item = 'd''água' WHERE id = $1",
			want:  "UPDATE transactions SET item = '?' WHERE id = $1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeQuery(tt.query); got != tt.want {
				t.Errorf("sanitizeQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSQLVerb(t *testing.T) {
	if got := extractSQLVerb("  select * from sync_logs"); got != "SELECT" {
		t.Errorf("extractSQLVerb() = %q, want SELECT", got)
	}
	if got := extractSQLVerb("COMMIT"); got != "COMMIT" {
		t.Errorf("extractSQLVerb() = %q, want COMMIT", got)
	}
}
