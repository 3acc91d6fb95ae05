package migrate

import "testing"

func Test_toMigrateURL(t *testing.T) {
	tests := []struct {
		name  string
		dbURI string
		want  string
	}{
		{
			name:  "postgresql scheme",
			dbURI: "postgresql://user:pw@localhost:5432/tpc",
			want:  "pgx5://user:pw@localhost:5432/tpc",
		},
		{
			name:  "postgres scheme",
			dbURI: "postgres://user:pw@localhost/tpc?sslmode=disable",
			want:  "pgx5://user:pw@localhost/tpc?sslmode=disable",
		},
		{
			name:  "already converted",
			dbURI: "pgx5://localhost/tpc",
			want:  "pgx5://localhost/tpc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toMigrateURL(tt.dbURI); got != tt.want {
				t.Errorf("toMigrateURL() = %v, want %v", got, tt.want)
			}
		})
	}
}
