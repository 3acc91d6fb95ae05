package migrate

import "testing"

func Test_prepareURLForDB(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "postgresql://u:p@localhost/tpc", "postgresql://u:p@localhost/tpc?sslmode=disable"},
		{"other params", "postgresql://localhost/tpc?x=1", "postgresql://localhost/tpc?x=1&sslmode=disable"},
		{"sslmode given", "postgresql://localhost/tpc?sslmode=require", "postgresql://localhost/tpc?sslmode=require"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepareURLForDB(tt.url); got != tt.want {
				t.Errorf("prepareURLForDB() = %v, want %v", got, tt.want)
			}
		})
	}
}
