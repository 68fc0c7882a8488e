package sandbox

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/clinic/clinic/internal/domain/address"
	"github.com/clinic/clinic/internal/domain/identity"
	"github.com/clinic/clinic/internal/platform/ident"
)

var (
	firstNames = []string{
		"Ana", "Bruno", "Camila", "Daniel", "Eduarda", "Felipe", "Gabriela",
		"Heitor", "Isabela", "João", "Larissa", "Marcos", "Natália", "Otávio",
	}
	lastNames = []string{
		"Silva", "Costa", "Souza", "Oliveira", "Pereira", "Almeida",
		"Ribeiro", "Carvalho", "Gomes", "Martins", "Rocha", "Barbosa",
	}
	cities = []struct{ city, state, ddd string }{
		{"São Paulo", "SP", "11"},
		{"Rio de Janeiro", "RJ", "21"},
		{"Belo Horizonte", "MG", "31"},
		{"Curitiba", "PR", "41"},
		{"Salvador", "BA", "71"},
	}
	streets = []string{"Rua das Flores", "Av. Paulista", "Rua XV de Novembro", "Av. Atlântica", "Rua da Bahia"}
)

// Generator produces reproducible fictitious patients.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator seeds the generator; 0 picks a time-based seed.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) cpf() string {
	return fmt.Sprintf("%03d.%03d.%03d-%02d",
		g.rng.Intn(1000), g.rng.Intn(1000), g.rng.Intn(1000), g.rng.Intn(100))
}

func (g *Generator) birthDate() string {
	y := 1940 + g.rng.Intn(70)
	m := 1 + g.rng.Intn(12)
	d := 1 + g.rng.Intn(28)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// Patient returns one patient with a fresh id.
func (g *Generator) Patient() identity.Patient {
	first, last := g.pick(firstNames), g.pick(lastNames)
	loc := cities[g.rng.Intn(len(cities))]
	return identity.Patient{
		ID:        ident.New(ident.PatientPrefix),
		FullName:  first + " " + last,
		CPF:       g.cpf(),
		BirthDate: g.birthDate(),
		Phone:     fmt.Sprintf("(%s) 9%04d-%04d", loc.ddd, g.rng.Intn(10000), g.rng.Intn(10000)),
		Email:     fmt.Sprintf("%s.%s%d@example.com", lower(first), lower(last), g.rng.Intn(100)),
		Address: address.Address{
			Zip:          fmt.Sprintf("%05d-%03d", g.rng.Intn(100000), g.rng.Intn(1000)),
			Street:       g.pick(streets),
			Number:       fmt.Sprint(1 + g.rng.Intn(2000)),
			Neighborhood: "Centro",
			City:         loc.city,
			State:        loc.state,
		},
	}
}

// lower keeps e-mail local parts ASCII.
func lower(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, byte(r+'a'-'A'))
		case r >= 'a' && r <= 'z':
			out = append(out, byte(r))
		case r == 'á' || r == 'â' || r == 'ã':
			out = append(out, 'a')
		case r == 'é' || r == 'ê':
			out = append(out, 'e')
		case r == 'í':
			out = append(out, 'i')
		case r == 'ó' || r == 'ô' || r == 'õ':
			out = append(out, 'o')
		case r == 'ú':
			out = append(out, 'u')
		}
	}
	return string(out)
}
