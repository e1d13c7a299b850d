package scaffold

import (
	"testing"
)

func TestProjectSpecValidate(t *testing.T) {
	t.Parallel()

	valid := ProjectSpec{Name: "foo", Language: LangC, LinkMode: LinkAbsolute}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	tests := []struct {
		name string
		spec ProjectSpec
	}{
		{"empty name", ProjectSpec{Name: "", Language: LangC, LinkMode: LinkAbsolute}},
		{"whitespace name", ProjectSpec{Name: "  ", Language: LangC, LinkMode: LinkAbsolute}},
		{"leading dot", ProjectSpec{Name: ".foo", Language: LangC, LinkMode: LinkAbsolute}},
		{"path separator", ProjectSpec{Name: "a/b", Language: LangC, LinkMode: LinkAbsolute}},
		{"bad language", ProjectSpec{Name: "foo", Language: "rust", LinkMode: LinkAbsolute}},
		{"bad link mode", ProjectSpec{Name: "foo", Language: LangC, LinkMode: "sideways"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.spec.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error for %+v", tt.spec)
			}
		})
	}
}

func TestLanguageDerivations(t *testing.T) {
	t.Parallel()

	if got := LangC.SourceExt(); got != "c" {
		t.Errorf("LangC.SourceExt() = %q, want c", got)
	}
	if got := LangCPP.HeaderExt(); got != "hpp" {
		t.Errorf("LangCPP.HeaderExt() = %q, want hpp", got)
	}
	if got := LangC.DefaultCompiler(); got != "cc" {
		t.Errorf("LangC.DefaultCompiler() = %q, want cc", got)
	}
	if got := LangCPP.DefaultCompiler(); got != "c++" {
		t.Errorf("LangCPP.DefaultCompiler() = %q, want c++", got)
	}
}

func TestOptionsDependenciesOrder(t *testing.T) {
	t.Parallel()

	opts := Options{
		LibraryURL:  "https://example.com/libft",
		Graphics:    true,
		GraphicsURL: "https://example.com/mlx",
	}

	deps := opts.Dependencies()
	if len(deps) != 2 {
		t.Fatalf("len(Dependencies()) = %d, want 2", len(deps))
	}
	if deps[0].Kind != DepLibrary || deps[0].LocalPath != "libft" {
		t.Errorf("deps[0] = %+v, want library in libft/", deps[0])
	}
	if deps[1].Kind != DepGraphics || deps[1].LocalPath != "minilibx" {
		t.Errorf("deps[1] = %+v, want graphics in minilibx/", deps[1])
	}

	if got := (Options{}).Dependencies(); len(got) != 0 {
		t.Errorf("Dependencies() on empty options = %v, want none", got)
	}
}

func TestParseRemotes(t *testing.T) {
	t.Parallel()

	t.Run("bare URLs are numbered after origin", func(t *testing.T) {
		t.Parallel()
		remotes, err := ParseRemotes([]string{
			"git@host:me/app.git",
			"https://example.com/mirror.git",
		})
		if err != nil {
			t.Fatalf("ParseRemotes() error = %v", err)
		}
		if remotes[0].Name != "origin" {
			t.Errorf("remotes[0].Name = %q, want origin", remotes[0].Name)
		}
		if remotes[1].Name != "remote2" {
			t.Errorf("remotes[1].Name = %q, want remote2", remotes[1].Name)
		}
	})

	t.Run("explicit names", func(t *testing.T) {
		t.Parallel()
		remotes, err := ParseRemotes([]string{"vogsphere=git@vog:me/app.git"})
		if err != nil {
			t.Fatalf("ParseRemotes() error = %v", err)
		}
		if remotes[0].Name != "vogsphere" || remotes[0].URL != "git@vog:me/app.git" {
			t.Errorf("remotes[0] = %+v", remotes[0])
		}
	})

	t.Run("URL containing equals stays a bare URL", func(t *testing.T) {
		t.Parallel()
		remotes, err := ParseRemotes([]string{"https://example.com/repo?ref=main"})
		if err != nil {
			t.Fatalf("ParseRemotes() error = %v", err)
		}
		if remotes[0].Name != "origin" {
			t.Errorf("remotes[0].Name = %q, want origin", remotes[0].Name)
		}
	})

	t.Run("empty spec rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseRemotes([]string{" "}); err == nil {
			t.Error("ParseRemotes() = nil, want error for empty spec")
		}
	})

	t.Run("dangling equals rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseRemotes([]string{"name="}); err == nil {
			t.Error("ParseRemotes() = nil, want error for name=")
		}
	})
}
