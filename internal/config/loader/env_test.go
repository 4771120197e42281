package loader

import "testing"

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoaderFrom("SUPTEXT_", []string{
		"SUPTEXT_TAB_SIZE=2",
		"SUPTEXT_THEME=light",
		"SUPTEXT_LOG_LEVEL=debug",
		"HOME=/root",
	})

	got := l.Load()
	want := []Setting{
		{Env: "SUPTEXT_TAB_SIZE", Path: "editor.tab_size", Value: "2"},
		{Env: "SUPTEXT_LOG_LEVEL", Path: "logging.level", Value: "debug"},
		{Env: "SUPTEXT_THEME", Path: "ui.theme", Value: "light"},
	}
	if len(got) != len(want) {
		t.Fatalf("Load() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Load()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEnvLoader_LongFormWins(t *testing.T) {
	for _, env := range [][]string{
		{"SUPTEXT_TAB_SIZE=2", "SUPTEXT_EDITOR_TAB_SIZE=8"},
		{"SUPTEXT_EDITOR_TAB_SIZE=8", "SUPTEXT_TAB_SIZE=2"},
	} {
		got := NewEnvLoaderFrom("SUPTEXT_", env).Load()
		if len(got) != 1 || got[0].Value != "8" {
			t.Errorf("Load(%v) = %v, want editor.tab_size=8", env, got)
		}
	}
}

func TestEnvLoader_EmptyValue(t *testing.T) {
	got := NewEnvLoaderFrom("SUPTEXT_", []string{"SUPTEXT_THEME="}).Load()
	if len(got) != 1 || got[0].Value != "" {
		t.Errorf("Load() = %v, want one empty override", got)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("SUPTEXT_")
	tests := []struct {
		env  string
		want string
	}{
		{"SUPTEXT_EDITOR_TAB_SIZE", "editor.tab_size"},
		{"SUPTEXT_SYNTAX_MATCH_TIMEOUT", "syntax.match_timeout"},
		{"SUPTEXT_UI_THEME", "ui.theme"},
		{"SUPTEXT_VERBOSE", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoaderFrom("SUPTEXT_", []string{"SUPTEXT_RULES=/etc/rules.yaml"})
	l.AddMapping("SUPTEXT_RULES", "syntax.rule_files")

	got := l.Load()
	if len(got) != 1 || got[0].Path != "syntax.rule_files" {
		t.Errorf("Load() = %v, want syntax.rule_files", got)
	}
}
