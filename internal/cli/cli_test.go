package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgtween/pkg/config"
	svgerrors "github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/pipeline"
)

const testConfig = `input_dir = "svg"
keyframes = ["one.svg", "two.svg", "three.svg"]
frames_per_transition = 4
output_name = "hero.json"
`

var testKeyframes = map[string]string{
	"one.svg": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50">
  <path id="body" d="M0 0 L10 10"/>
</svg>`,
	"two.svg": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50">
  <path id="body" d="M10 10 L20 20"/>
</svg>`,
	"three.svg": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50">
  <path id="body" d="M10 10 Q15 15 20 20"/>
</svg>`,
}

// writeProject lays out a config file and its keyframes in a temp dir and
// returns the config path.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "svg"), 0755); err != nil {
		t.Fatal(err)
	}
	for name, src := range testKeyframes {
		if err := os.WriteFile(filepath.Join(dir, "svg", name), []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "svgtween.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfig), config.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func quietCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestConfigPath(t *testing.T) {
	if got := configPath(nil); got != defaultConfigFile {
		t.Errorf("configPath(nil) = %q, want %q", got, defaultConfigFile)
	}
	if got := configPath([]string{"hero.yaml"}); got != "hero.yaml" {
		t.Errorf("configPath() = %q, want hero.yaml", got)
	}
}

func TestVerbose(t *testing.T) {
	c := quietCLI()
	if c.verbose() {
		t.Error("verbose() = true at info level")
	}
	c.SetLogLevel(LogDebug)
	if !c.verbose() {
		t.Error("verbose() = false at debug level")
	}
}

func TestBuildCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cfgPath := writeProject(t)
	dir := filepath.Dir(cfgPath)

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"build", cfgPath, "--frames", "2", "--name", "intro.json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("build error: %v", err)
	}

	// 3 keyframes, 2 in-betweens each: 2*2 + 3 frames.
	frames, err := filepath.Glob(filepath.Join(dir, "animations", "frames", "frame_*.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 7 {
		t.Errorf("wrote %d frames, want 7", len(frames))
	}

	data, err := os.ReadFile(filepath.Join(dir, "animations", "intro.json"))
	if err != nil {
		t.Fatalf("lottie not written: %v", err)
	}
	for _, want := range []string{`"op": 7`, `"nm": "intro"`, `"w": 100`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("lottie missing %s:\n%s", want, data)
		}
	}
}

func TestBuildCommandMissingKeyframe(t *testing.T) {
	cfgPath := writeProject(t)
	if err := os.Remove(filepath.Join(filepath.Dir(cfgPath), "svg", "two.svg")); err != nil {
		t.Fatal(err)
	}

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"build", cfgPath, "--no-cache"})
	if err := root.Execute(); err == nil {
		t.Fatal("build with a missing keyframe should fail")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(cfgPath), "animations")); !os.IsNotExist(err) {
		t.Error("failed build should not write output")
	}
}

func TestBuildCommandRejectsZeroFlags(t *testing.T) {
	for _, flag := range []string{"--frames=0", "--fps=0"} {
		t.Run(flag, func(t *testing.T) {
			cfgPath := writeProject(t)
			root := quietCLI().RootCommand()
			root.SetArgs([]string{"build", cfgPath, "--no-cache", flag})
			err := root.Execute()
			if !svgerrors.Is(err, svgerrors.ErrCodeInvalidConfig) {
				t.Fatalf("build %s error = %v, want INVALID_CONFIG", flag, err)
			}
		})
	}
}

func TestBuildOptsApply(t *testing.T) {
	c := quietCLI()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, frames int, fps float64, name string)
	}{
		{
			name: "unset flags keep config",
			args: nil,
			check: func(t *testing.T, frames int, fps float64, name string) {
				if frames != 4 || fps != 0 || name != "hero.json" {
					t.Errorf("got frames=%d fps=%v name=%q", frames, fps, name)
				}
			},
		},
		{
			name: "flags override",
			args: []string{"--frames", "12", "--fps", "24", "-n", "x.json"},
			check: func(t *testing.T, frames int, fps float64, name string) {
				if frames != 12 || fps != 24 || name != "x.json" {
					t.Errorf("got frames=%d fps=%v name=%q", frames, fps, name)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := c.buildCommand()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg := loadTestConfig(t)
			opts := buildOpts{}
			opts.frames, _ = cmd.Flags().GetInt("frames")
			opts.fps, _ = cmd.Flags().GetFloat64("fps")
			opts.name, _ = cmd.Flags().GetString("name")
			opts.apply(cmd, cfg)
			tt.check(t, cfg.FramesPerTransition, cfg.FPS, cfg.OutputName)
		})
	}
}

func TestInspectPlain(t *testing.T) {
	cfgPath := writeProject(t)

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"inspect", cfgPath, "--plain", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(cfgPath), "animations")); !os.IsNotExist(err) {
		t.Error("inspect should not write output")
	}
}

func TestCacheClear(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv(envRedisURL, "")
	cfgPath := writeProject(t)

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"build", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("build error: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) == 0 {
		t.Fatal("build left no cache entries")
	}

	if err := clearCache(context.Background()); err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	entries, _ = os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) != 0 {
		t.Errorf("cache dir still holds %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			var buf strings.Builder
			root := quietCLI().RootCommand()
			root.SetOut(&buf)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(buf.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestCompleteConfigFiles(t *testing.T) {
	exts, directive := completeConfigFiles(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt || len(exts) != 3 {
		t.Errorf("completeConfigFiles() = %v, %v", exts, directive)
	}
	if _, directive := completeConfigFiles(nil, []string{"a.toml"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v, want NoFileComp", directive)
	}
}

func TestRunServeShutdown(t *testing.T) {
	cfgPath := writeProject(t)
	c := quietCLI()
	build := func(ctx context.Context) (*pipeline.Result, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		return pipeline.NewRunner(nil, nil, c.Logger).Execute(ctx, cfg)
	}

	ctx, cancel := context.WithCancel(withLogger(context.Background(), c.Logger))
	time.AfterFunc(100*time.Millisecond, cancel)

	if err := c.runServe(ctx, "127.0.0.1:0", build); !errors.Is(err, context.Canceled) {
		t.Errorf("runServe() error = %v, want context.Canceled", err)
	}
}
