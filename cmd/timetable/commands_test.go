package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"timetable/internal/faults"
	"timetable/internal/ingest"
	"timetable/internal/store"
	"timetable/internal/testsupport"
)

func TestExtractLecturesFormats(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"extract", "lectures", env.lecture}, env.configPath)
	if err != nil {
		t.Fatalf("extract table: %v", err)
	}
	requireContains(t, out, "Lectures (3)")
	requireContains(t, out, "실습실2")

	out, _, err = runCLI(t, []string{"extract", "lectures", env.lecture, "--format", "csv"}, env.configPath)
	if err != nil {
		t.Fatalf("extract csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || lines[0] != "subject,teacher,room" {
		t.Fatalf("unexpected csv:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"extract", "lectures", env.lecture, "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("extract json: %v", err)
	}
	var lectures []map[string]string
	if err := json.Unmarshal([]byte(out), &lectures); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(lectures) != 3 || lectures[0]["teacher"] != "김철수" {
		t.Fatalf("unexpected lectures: %+v", lectures)
	}
}

func TestExtractEnrollmentsAndPeriods(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"extract", "enrollment", env.enrollment}, env.configPath)
	if err != nil {
		t.Fatalf("extract enrollments: %v", err)
	}
	requireContains(t, out, "Students (1)")
	requireContains(t, out, "국어 1반; 정보처리 3반")
	requireContains(t, out, "Enrollment periods (2)")

	out, _, err = runCLI(t, []string{"extract", "periods", env.period}, env.configPath)
	if err != nil {
		t.Fatalf("extract periods: %v", err)
	}
	requireContains(t, out, "Periods (2)")
	requireContains(t, out, "Tue")
	requireContains(t, out, "Mon")
}

func TestExtractRejectsBadArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"extract", "rooms", env.lecture}, env.configPath); err == nil {
		t.Fatal("expected unknown kind to fail")
	}
	if _, _, err := runCLI(t, []string{"extract", "lectures", env.lecture, "--format", "xml"}, env.configPath); err == nil {
		t.Fatal("expected unknown format to fail")
	}
	if _, _, err := runCLI(t, []string{"extract", "lectures", env.lecture, "--sheet", "Missing"}, env.configPath); err == nil {
		t.Fatal("expected missing sheet to fail")
	}
}

func TestIngestDryRunJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	args := append([]string{"ingest", "--dry-run", "--json"}, env.sourceArgs()...)
	out, _, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("ingest --dry-run: %v", err)
	}
	var report ingest.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.DryRun || report.Periods != 3 || report.Load.TeachersCreated != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("decode raw report: %v", err)
	}
	if _, ok := raw["elapsed_ms"].(float64); !ok {
		t.Fatalf("expected numeric elapsed_ms, got %v", raw["elapsed_ms"])
	}
	if _, ok := raw["elapsed"]; ok {
		t.Fatal("report should not expose raw nanosecond durations")
	}

	out, _, err = runCLI(t, []string{"db", "stats", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("db stats: %v", err)
	}
	var counts []store.TableCount
	if err := json.Unmarshal([]byte(out), &counts); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	for _, c := range counts {
		if c.Rows != 0 {
			t.Fatalf("dry run wrote %d %s", c.Rows, c.Name)
		}
	}
}

func TestIngestThenInspect(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, append([]string{"ingest"}, env.sourceArgs()...), env.configPath)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	requireContains(t, out, "periods added")
	requireContains(t, out, "administrator created")

	out, _, err = runCLI(t, []string{"db", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("db stats: %v", err)
	}
	requireContains(t, out, "enrollments")

	out, _, err = runCLI(t, []string{"db", "health"}, env.configPath)
	if err != nil {
		t.Fatalf("db health: %v", err)
	}
	requireContains(t, out, "[OK]")
	if strings.Contains(out, "[ERROR]") {
		t.Fatalf("unexpected health error:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"tokens", "--name", "administrator", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	var tokens []store.IdentifyToken
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	if len(tokens) != 1 || len(tokens[0].Token) != 8 || !tokens[0].Role.Has(store.RoleAdministrator) {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}

	out, _, err = runCLI(t, []string{"tokens"}, env.configPath)
	if err != nil {
		t.Fatalf("tokens table: %v", err)
	}
	requireContains(t, out, "홍길동")
	requireContains(t, out, "teacher")
}

func TestIngestRequiresSources(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"ingest", "--enrollment", env.enrollment}, env.configPath); err == nil {
		t.Fatal("expected missing flags to fail")
	}
}

func TestIngestUnknownSubjectIsMissingReference(t *testing.T) {
	env := setupCLITestEnv(t)
	enrollment := testsupport.WriteWorkbook(t, "Sheet1", testsupport.StringRows([][]string{
		{"수강 신청 현황", "", "", "", ""},
		{"51203 홍길동", "12 학점", "", "", ""},
		{"체육 2반", "", "", "", ""},
		{}, {}, {}, {}, {}, {},
		{"", "", "", "", "nan"},
	}))
	args := []string{"ingest", "--enrollment", enrollment, "--lecture", env.lecture, "--period", env.period}
	_, _, err := runCLI(t, args, env.configPath)
	if !errors.Is(err, faults.ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
	if kind := faults.Classify(err); faults.Hint(kind) == faults.Hint(faults.KindInternal) {
		t.Fatalf("expected a specific hint for %s", kind)
	}
}
