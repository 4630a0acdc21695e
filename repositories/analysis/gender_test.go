package analysis

import (
	"testing"
)

func TestGuessGender(t *testing.T) {
	tests := []struct {
		name      string
		biography string
		category  string
		fullName  string
		handle    string
		want      string
	}{
		{"pronouns win", "ela/dela | parcerias na bio", "", "Chris Silva", "chris", GenderFemale},
		{"english pronouns", "he/him, lifestyle", "", "Sam", "sam", GenderMale},
		{"category keyword", "", "Moda Feminina", "", "look.store", GenderFemale},
		{"conflicting pronouns fall through", "ela/dela e ele/dele", "", "Chris", "chris.xyz", GenderUnknown},
		{"female name table", "", "", "Maria Fernanda", "mf", GenderFemale},
		{"male name table", "", "", "Pedro Henrique", "ph", GenderMale},
		{"handle hint", "", "", "", "garota_do_sul", GenderFemale},
		{"suffix a", "", "", "Luciana Alves", "la", GenderFemale},
		{"suffix o", "", "", "Adriano", "ad", GenderMale},
		{"no signal", "", "", "Kim", "k", GenderUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuessGender(tt.biography, tt.category, tt.fullName, tt.handle)
			if got != tt.want {
				t.Errorf("GuessGender = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCommercial(t *testing.T) {
	tests := []struct {
		handle string
		name   string
		want   bool
	}{
		{"loja_da_moda", "", true},
		{"ana.oficial", "Atacado Center", true},
		{"maria.estilo", "Maria Fernanda", false},
		{"pedidos_rapidos", "", true},
		{"anapaula", "Ana Paula", false},
	}
	for _, tt := range tests {
		if got := IsCommercial(tt.handle, tt.name); got != tt.want {
			t.Errorf("IsCommercial(%q, %q) = %v, want %v", tt.handle, tt.name, got, tt.want)
		}
	}
}

func TestIsOnTopic(t *testing.T) {
	tests := []struct {
		category  string
		biography string
		name      string
		want      bool
	}{
		{"Fashion Model", "", "", true},
		{"Digital creator", "posto meus looks favoritos", "", true},
		{"Artist", "", "Estilo Urbano", true},
		{"Chef", "receitas todo dia", "Paula", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		if got := IsOnTopic(tt.category, tt.biography, tt.name); got != tt.want {
			t.Errorf("IsOnTopic(%q, %q, %q) = %v, want %v", tt.category, tt.biography, tt.name, got, tt.want)
		}
	}
}
