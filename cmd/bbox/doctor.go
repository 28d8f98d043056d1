package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Backend  backendInfo `json:"backend"`
	Config   configInfo  `json:"config"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// backendInfo reports which quality modes this build can serve.
type backendInfo struct {
	Vector    bool `json:"vector"`
	Rasterize bool `json:"rasterize"`
	Merge     bool `json:"merge"`
}

// configInfo reports the config file a bare run would load.
type configInfo struct {
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	AWSRegion     string `json:"aws_region,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := hasFlag(args, "--json")

	result := runDoctor(env)

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

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkBackend(result, env)
	checkConfig(result)
	checkEnvironment(result, env)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkBackend reports the capabilities of the PDF backend.
func checkBackend(result *doctorResult, env *Environment) {
	backend := env.Backend
	if backend == nil {
		backend = bbox.NewPDFBackend(zerolog.Nop())
	}
	caps := backend.Capabilities()
	result.Backend = backendInfo{Vector: caps.EmbedVector, Rasterize: caps.Rasterize, Merge: caps.MergeBasic}

	if !caps.MergeBasic {
		result.Errors = append(result.Errors, "Backend cannot merge content: standard quality unavailable")
	}
	if !caps.Rasterize {
		result.Warnings = append(result.Warnings,
			"Rasterizer not compiled in: high and medium quality fall back to standard")
	}
}

// checkConfig resolves the default config the way convert does.
func checkConfig(result *doctorResult) {
	_, path, err := config.LoadConfig(defaultConfigName)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
	case err != nil:
		result.Config.Error = err.Error()
		result.Errors = append(result.Errors, fmt.Sprintf("Config file is invalid: %v", err))
	default:
		result.Config.Path = path
	}
}

// checkEnvironment detects container, CI and AWS settings.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env.Getenv)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	result.Env.AWSRegion = env.Getenv("AWS_REGION")
	if result.Env.AWSRegion == "" {
		result.Env.AWSRegion = env.Getenv("AWS_DEFAULT_REGION")
	}
	if result.Env.AWSRegion == "" && (env.Getenv("AWS_ACCESS_KEY_ID") != "" || env.Getenv("AWS_PROFILE") != "") {
		result.Warnings = append(result.Warnings,
			"AWS credentials set without AWS_REGION: s3:// paths may fail")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("BBOX_CONTAINER") == "1" {
		return true, "BBOX_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for atomic writes.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "bbox-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "bbox doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Backend")
	fmt.Fprintf(w, "  %s Vector embedding (original quality)\n", mark(r.Backend.Vector))
	fmt.Fprintf(w, "  %s Rasterizer (high/medium quality)\n", mark(r.Backend.Rasterize))
	fmt.Fprintf(w, "  %s Content merge (standard quality)\n", mark(r.Backend.Merge))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Error != "":
		fmt.Fprintln(w, "  [ERROR] Invalid config file")
	case r.Config.Path != "":
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Config.Path)
	default:
		fmt.Fprintln(w, "  [OK] None found, using defaults")
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
	if r.Env.AWSRegion != "" {
		fmt.Fprintf(w, "  [OK] AWS region: %s\n", r.Env.AWSRegion)
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
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func mark(ok bool) string {
	if ok {
		return "[OK]"
	}
	return "[--]"
}
