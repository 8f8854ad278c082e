package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name      string
	Specialty string
}

func personConfig() Config[person] {
	return Config[person]{
		SearchFields: func(p person) []string { return []string{p.Name, p.Specialty} },
		SectionKey:   func(p person) string { return NameKey(p.Name) },
	}
}

type visit struct {
	Physician string
	Patient   string
	DateTime  string
}

func visitConfig() Config[visit] {
	return Config[visit]{
		SearchFields: func(v visit) []string { return []string{v.Physician, v.Patient} },
		SectionKey:   func(v visit) string { return DateKey(v.DateTime) },
		Descending:   true,
	}
}

func TestProjectCaseInsensitiveSearch(t *testing.T) {
	people := []person{
		{Name: "Ana", Specialty: "CARDIOLOGIA"},
		{Name: "ana Paula", Specialty: "ORTOPEDIA"},
		{Name: "Beto", Specialty: "DERMATOLOGIA"},
	}

	sections := Project(people, "ana", personConfig())
	require.Len(t, sections, 1)
	assert.Equal(t, "A", sections[0].Title)
	require.Len(t, sections[0].Items, 2)
	assert.Equal(t, "Ana", sections[0].Items[0].Name, "input order preserved")
	assert.Equal(t, "ana Paula", sections[0].Items[1].Name)
}

func TestProjectMatchesSecondField(t *testing.T) {
	people := []person{
		{Name: "Ana", Specialty: "CARDIOLOGIA"},
		{Name: "Beto", Specialty: "ORTOPEDIA"},
	}
	sections := Project(people, "cardio", personConfig())
	require.Len(t, sections, 1)
	assert.Equal(t, "Ana", sections[0].Items[0].Name)
}

func TestProjectEmptySearchIncludesEveryItemOnce(t *testing.T) {
	people := []person{
		{Name: "Carla"}, {Name: "ana"}, {Name: "Beto"}, {Name: "Caio"},
	}
	sections := Project(people, "", personConfig())

	var titles []string
	total := 0
	for _, s := range sections {
		titles = append(titles, s.Title)
		total += len(s.Items)
	}
	assert.Equal(t, []string{"A", "B", "C"}, titles, "ascending lexicographic titles")
	assert.Equal(t, len(people), total)
	assert.Equal(t, "Carla", sections[2].Items[0].Name, "stable within section")
	assert.Equal(t, "Caio", sections[2].Items[1].Name)
}

func TestProjectEmptyNameFallsToHash(t *testing.T) {
	sections := Project([]person{{Name: ""}}, "", personConfig())
	require.Len(t, sections, 1)
	assert.Equal(t, "#", sections[0].Title)
}

func TestProjectNilListYieldsNoSections(t *testing.T) {
	assert.Empty(t, Project(nil, "qualquer", personConfig()))
}

func TestProjectAppointmentsDescendingByDay(t *testing.T) {
	visits := []visit{
		{Physician: "Dr. A", Patient: "Ana", DateTime: "2025-12-24T09:00:00"},
		{Physician: "Dr. B", Patient: "Beto", DateTime: "2025-12-25T10:00:00"},
		{Physician: "Dr. C", Patient: "Caio", DateTime: "2025-12-25T08:00:00"},
		{Physician: "Dr. D", Patient: "Duda"},
	}

	sections := Project(visits, "", visitConfig())
	require.Len(t, sections, 3)
	assert.Equal(t, "Sem Data", sections[0].Title, "sentinel sorts after ISO dates, descending puts it first")
	assert.Equal(t, "2025-12-25", sections[1].Title)
	assert.Equal(t, "2025-12-24", sections[2].Title)

	// Same-day items keep input order; no secondary time sort.
	assert.Equal(t, "Dr. B", sections[1].Items[0].Physician)
	assert.Equal(t, "Dr. C", sections[1].Items[1].Physician)
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "A", NameKey("ana"))
	assert.Equal(t, "Á", NameKey("álvaro"))
	assert.Equal(t, "#", NameKey(""))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2025-12-25", DateKey("2025-12-25T10:00:00"))
	assert.Equal(t, "Sem Data", DateKey(""))
	assert.Equal(t, "2025-12-25", DateKey("2025-12-25"))
}

func TestFormatDateTitle(t *testing.T) {
	assert.Equal(t, "25/12/2025", FormatDateTitle("2025-12-25"))
	assert.Equal(t, "Sem Data", FormatDateTitle("Sem Data"))
}
