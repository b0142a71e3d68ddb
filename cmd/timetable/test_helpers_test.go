package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timetable/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
	enrollment string
	lecture    string
	period     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("TIMETABLE_DATABASE_DSN", "")
	t.Setenv("TIMETABLE_DATABASE_DRIVER", "")

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[database]\ndsn = %q\n\n[ingest]\nschool_year = 2025\n\n[logging]\nlevel = \"error\"\n",
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "data", "timetable.db"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		configPath: configPath,
		baseDir:    base,
		enrollment: testsupport.WriteWorkbook(t, "Sheet1", testsupport.StringRows([][]string{
			{"수강 신청 현황", "", "", "", ""},
			{"51203 홍길동", "12 학점", "", "", ""},
			{"국어 1반", "", "", "", ""},
			{"", "정보처리 3반", "", "", ""},
			{}, {}, {}, {}, {},
			{"", "", "", "", "nan"},
		})),
		lecture: testsupport.WriteWorkbook(t, "Sheet1", testsupport.StringRows([][]string{
			{"과목", "교사", "강의실", "교사", "강의실", "교사", "강의실"},
			{"국어", "김철수", "101", "", "", "", "nan"},
			{"정보처리", "박민수", "실습실", "최지원", "실습실2", "", "nan"},
		})),
		period: testsupport.WriteWorkbook(t, "Sheet1", testsupport.StringRows([][]string{
			{"과목", "교사", "월", "화", "수", "목", "금"},
			{"정보처리", "박민수", "", "2(3분반)", "", "", "nan"},
			{"", "최지원", "1(4분반)", "", "", "", "nan"},
		})),
	}
}

func (e *cliTestEnv) sourceArgs() []string {
	return []string{"--enrollment", e.enrollment, "--lecture", e.lecture, "--period", e.period}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", substr, output)
	}
}
