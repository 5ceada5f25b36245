package record

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	csv := `Titulo,Descripción,Prioridad,Plataforma,Team
"Disk full, again","A ""quoted"" description",Alta,Web,Equipo Azul
Login broken,Cannot log in,Media,Mobile,
`

	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Title != "Disk full, again" {
		t.Errorf("quoted comma mishandled: %q", first.Title)
	}
	if first.Description != `A "quoted" description` {
		t.Errorf("escaped quotes mishandled: %q", first.Description)
	}
	if first.Priority != "Alta" {
		t.Errorf("priority = %q", first.Priority)
	}
	if first.Fields["Plataforma"] != "Web" || first.Fields["Team"] != "Equipo Azul" {
		t.Errorf("unexpected fields: %#v", first.Fields)
	}

	// Blank cells are omitted, not stored as empty strings.
	if _, ok := records[1].Fields["Team"]; ok {
		t.Error("blank value should be absent from Fields")
	}
}

func TestParseDeduplicatesTitles(t *testing.T) {
	csv := `Titulo,Prioridad
Disk full,Alta
disk full ,Baja
DISK FULL,Media
Other issue,Baja
`

	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected duplicates collapsed to 2 records, got %d", len(records))
	}
	if records[0].Priority != "Alta" {
		t.Error("first occurrence must win")
	}
	if records[1].Title != "Other issue" {
		t.Errorf("unexpected second record: %q", records[1].Title)
	}
}

func TestParseHeaderAliases(t *testing.T) {
	csv := `Title,Description,Priority
Broken build,It does not build,High
`

	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Title != "Broken build" || records[0].Description != "It does not build" || records[0].Priority != "High" {
		t.Errorf("aliases not recognized: %+v", records[0])
	}
}

func TestParseTrimsHeaderWhitespace(t *testing.T) {
	// The Team column historically carried a trailing space in its header.
	csv := "Titulo,Team \nDisk full,Equipo Azul\n"

	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Fields["Team"] != "Equipo Azul" {
		t.Errorf("trailing-space header not trimmed: %#v", records[0].Fields)
	}
}

func TestParseMergesEvidenceColumns(t *testing.T) {
	csv := `Titulo,Evidencias,Evidencia 2
Disk full,https://a.example/1.png,https://a.example/2.png
`

	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := records[0].Fields["Evidencias"]; got != "https://a.example/1.png, https://a.example/2.png" {
		t.Errorf("evidence columns not merged: %q", got)
	}
}

func TestParseRejectsHeaderOnly(t *testing.T) {
	if _, err := Parse(strings.NewReader("Titulo,Prioridad\n")); err == nil {
		t.Error("expected error for CSV without data rows")
	}
}
