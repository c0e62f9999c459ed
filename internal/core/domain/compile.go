package domain

// CompileRequest asks for one resource to be compiled for one platform.
type CompileRequest struct {
	ID         ResourceID
	SourcePath string
	Platform   string
}

// NewCompileRequest creates a request whose source path is the resource's own path.
func NewCompileRequest(id ResourceID, platform string) CompileRequest {
	return CompileRequest{ID: id, SourcePath: id.SourcePath(), Platform: platform}
}

// CompileResult is the outcome of one compile job.
type CompileResult struct {
	Request      CompileRequest
	State        ResourceState
	Output       []byte
	Dependencies []string
	Requirements []ResourceID
	Diagnostics  []Diagnostic
	// CompilerVersion and Fingerprint form the cache key of a successful compile.
	CompilerVersion uint32
	Fingerprint     string
}

// DeleteResult is the outcome of deleting a data or temporary file.
type DeleteResult int

const (
	// DeleteSuccess indicates the file was removed.
	DeleteSuccess DeleteResult = iota
	// DeleteNoEntry indicates the file did not exist.
	DeleteNoEntry
	// DeleteFailure indicates the file exists but could not be removed.
	DeleteFailure
)

// String returns the string representation of the DeleteResult.
func (r DeleteResult) String() string {
	switch r {
	case DeleteSuccess:
		return "success"
	case DeleteNoEntry:
		return "no_entry"
	default:
		return "failure"
	}
}
