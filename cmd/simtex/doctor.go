package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	simtex "github.com/alnah/go-simtex"
	"github.com/alnah/go-simtex/internal/config"
)

// versionTimeout bounds "<compiler> --version".
const versionTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Compiler compilerInfo `json:"compiler"`
	Viewer   viewerInfo   `json:"viewer"`
	Config   configInfo   `json:"config"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// compilerInfo holds LaTeX compiler detection results.
type compilerInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// viewerInfo holds PDF viewer detection results.
type viewerInfo struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
}

// configInfo holds configuration lookup results.
type configInfo struct {
	Path  string `json:"path,omitempty"`
	Valid bool   `json:"valid"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctor holds the lookups used by the checks. Tests replace them.
type doctor struct {
	env      *Environment
	lookPath func(string) (string, error)
	version  func(ctx context.Context, bin string) (string, error)
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := false
	configArg := ""
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-h" || arg == "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		case arg == "--json":
			jsonOutput = true
		case (arg == "-c" || arg == "--config") && i+1 < len(args):
			i++
			configArg = args[i]
		case strings.HasPrefix(arg, "--config="):
			configArg = strings.TrimPrefix(arg, "--config=")
		}
	}

	d := &doctor{env: env, lookPath: exec.LookPath, version: compilerVersion}
	result := d.run(ctx, configName(configArg, env.Getenv("SIMTEX_CONFIG")))

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// run performs all diagnostic checks.
func (d *doctor) run(ctx context.Context, configName string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg := d.checkConfig(result, configName)
	d.checkCompiler(ctx, result, cfg)
	d.checkViewer(result, cfg)
	d.checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig locates and validates the configuration. Nothing is created
// or repaired. It returns the loaded config, or the defaults.
func (d *doctor) checkConfig(result *doctorResult, name string) *config.Config {
	path, err := config.Locate(name)
	if err != nil {
		if name == config.DefaultName && errors.Is(err, config.ErrConfigNotFound) {
			if def, derr := config.DefaultPath(); derr == nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("No config found; the first conversion creates %s", def))
			}
			return config.DefaultConfig()
		}
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return config.DefaultConfig()
	}

	result.Config.Path = path
	cfg, err := config.LoadFile(path)
	if err != nil {
		if errors.Is(err, config.ErrMissingField) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Config incomplete (%v); run 'simtex config update'", err))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("Config invalid: %v", err))
		}
		return config.DefaultConfig()
	}

	result.Config.Valid = true
	return cfg
}

// checkCompiler detects the LaTeX compiler and its version.
func (d *doctor) checkCompiler(ctx context.Context, result *doctorResult, cfg *config.Config) {
	name := cfg.Build.Compiler
	if c := d.env.Getenv("SIMTEX_COMPILER"); c != "" {
		name = c
	}
	if name == "" {
		name = simtex.DefaultCompiler
	}
	result.Compiler.Name = name

	bin, err := d.lookPath(name)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("LaTeX compiler %q not found in PATH; --build will fail", name))
		return
	}
	result.Compiler.Found = true
	result.Compiler.Path = bin

	version, err := d.version(ctx, bin)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", name, err))
		return
	}
	result.Compiler.Version = version
}

// checkViewer detects the command used by --build-view.
func (d *doctor) checkViewer(result *doctorResult, cfg *config.Config) {
	name := platformOpener()
	if fields := strings.Fields(cfg.Build.Viewer); len(fields) > 0 {
		name = fields[0]
	}
	result.Viewer.Name = name

	if _, err := d.lookPath(name); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("PDF viewer %q not found; --build-view will fail", name))
		return
	}
	result.Viewer.Found = true
}

// checkEnvironment detects container and CI environments.
func (d *doctor) checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = d.isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if d.env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func (d *doctor) isContainer() (bool, string) {
	if d.env.Getenv("SIMTEX_CONTAINER") == "1" {
		return true, "SIMTEX_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := d.env.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if d.env.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory is writable; LaTeX writes its
// auxiliary files there on some distributions.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "simtex-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// compilerVersion returns the first line of "<bin> --version".
func compilerVersion(ctx context.Context, bin string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- compiler from user configuration
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// platformOpener returns the command used to open files on this platform.
func platformOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "cmd"
	default:
		return "xdg-open"
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "simtex doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LaTeX")
	if r.Compiler.Found {
		fmt.Fprintf(w, "  [OK] %s at %s\n", r.Compiler.Name, r.Compiler.Path)
		if r.Compiler.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Compiler.Version)
		}
	} else {
		fmt.Fprintf(w, "  [WARN] %s not found\n", r.Compiler.Name)
	}
	if r.Viewer.Found {
		fmt.Fprintf(w, "  [OK] Viewer: %s\n", r.Viewer.Name)
	} else {
		fmt.Fprintf(w, "  [WARN] Viewer: %s not found\n", r.Viewer.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Valid:
		fmt.Fprintf(w, "  [OK] %s\n", r.Config.Path)
	case r.Config.Path != "":
		fmt.Fprintf(w, "  [WARN] %s has problems\n", r.Config.Path)
	default:
		fmt.Fprintln(w, "  [WARN] Not found, using defaults")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert and build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
