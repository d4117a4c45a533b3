package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/DLii-Research/snake-fungal-disease/internal/jobspec"
)

// Loader error codes.
const (
	ErrCodeNotFound    = "E001" // specs directory missing
	ErrCodeNoFiles     = "E002" // no CUE files found
	ErrCodeScanError   = "E003" // directory scan failed
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeBuildFailed = "E005" // CUE build failed
	ErrCodeGeneric     = "E006" // other loader error
)

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadResult contains the results of loading a job catalog from a directory.
type LoadResult struct {
	Catalog   *jobspec.Catalog
	FileCount int // Number of CUE files found
}

// LoadCatalog loads and validates the CUE job catalog from a directory.
//
// Returns the catalog plus all decode/validation errors found; a nil result
// means nothing loadable was present at all. Callers decide whether partial
// errors are fatal (launch: yes; validate: report them all).
func LoadCatalog(dir string) (*LoadResult, []error) {
	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("specs directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing specs directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	// Load CUE instances
	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	catalog, errs := jobspec.DecodeCatalog(value)
	if catalog == nil {
		return nil, errs
	}

	return &LoadResult{Catalog: catalog, FileCount: len(cueFiles)}, errs
}

// FindCUEFiles returns the .cue files directly inside dir, sorted by name.
// Subdirectories are not descended into; a catalog is a flat directory.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".cue") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// loadCatalogStrict loads the catalog, converting any error into an ExitError
// with ExitCommandError. Used by commands that need a fully valid catalog.
func loadCatalogStrict(dir string) (*jobspec.Catalog, error) {
	result, errs := LoadCatalog(dir)
	if result == nil {
		return nil, WrapExitError(ExitCommandError, "failed to load job specs", errs[0])
	}
	if len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError,
			fmt.Sprintf("job specs have %d validation error(s), run \"sfd validate %s\"", len(errs), dir),
			errs[0])
	}
	return result.Catalog, nil
}

// lookupJob resolves a job by name against the catalog.
func lookupJob(catalog *jobspec.Catalog, name string) (jobspec.Job, error) {
	job, ok := catalog.Lookup(name)
	if !ok {
		names := make([]string, 0, catalog.Len())
		for _, j := range catalog.Jobs() {
			names = append(names, j.Name)
		}
		return jobspec.Job{}, NewExitError(ExitCommandError,
			fmt.Sprintf("unknown job %q (known jobs: %s)", name, strings.Join(names, ", ")))
	}
	return job, nil
}
