package cli

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sqlcond/internal/compiler"
)

// LoadMode controls how errors are handled during filter loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading filters from a directory.
type LoadResult struct {
	Filters   []compiler.Filter // In declaration order
	CUEValue  cue.Value         // The raw CUE value for additional processing
	FileCount int               // Number of CUE files found
}

// Lookup returns the filter with the given name.
func (r *LoadResult) Lookup(name string) (compiler.Filter, bool) {
	for _, f := range r.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return compiler.Filter{}, false
}

// LoadError represents an error that occurred during filter loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadFilters loads and compiles the CUE filters declared under filter: in a
// directory.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadFilters(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("filters directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing filters directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	// Find CUE files
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

	// Check for load errors
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	// Build value from instance
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	filtersVal := value.LookupPath(cue.ParsePath("filter"))
	if filtersVal.Exists() {
		filters, compileErrs := compiler.CompileFilters(filtersVal, mode == LoadModeFailFast)
		result.Filters = filters
		for _, compileErr := range compileErrs {
			errs = append(errs, convertCompileError(compileErr))
		}
	}

	// Check if we found anything
	if len(result.Filters) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no filters found under filter:"})
	}

	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	context := "filter"
	var filterErr *compiler.FilterError
	if errors.As(err, &filterErr) {
		context = "filter." + filterErr.Name
		err = filterErr.Err
	}

	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: fmt.Sprintf("%s: %s: %s", context, compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error

	// Condition errors
	ErrCodeUnknownOp       = "E010" // Op is not a builder name
	ErrCodeInvalidArgument = "E011" // Strict builder rejected its value
	ErrCodeInvalidValue    = "E012" // Value could not be decoded
	ErrCodeFilterNotFound  = "E013" // No filter with that name
	ErrCodeQueryFailed     = "E014" // Database open or select failed

	// Filter document errors
	ErrCodeFilterShape  = "E101" // Node is not exactly one of column, all, any, not
	ErrCodeFilterColumn = "E102" // Bad column
	ErrCodeFilterOp     = "E103" // Bad op
	ErrCodeFilterValue  = "E104" // Value is not concrete data
)

// MapFieldToErrorCode maps a compiler error field to an error code.
// Fields are node paths such as "all[1].not.op"; the last segment decides.
func MapFieldToErrorCode(field string) string {
	switch path.Ext("." + field) {
	case ".column":
		return ErrCodeFilterColumn
	case ".op":
		return ErrCodeFilterOp
	case ".value":
		return ErrCodeFilterValue
	case ".cue":
		return ErrCodeGeneric
	default:
		return ErrCodeFilterShape
	}
}
