package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyComment is returned when a candidate annotation has a blank comment.
	ErrEmptyComment = zerr.New("comment is required")

	// ErrInvalidAnnotation is returned by storage when the URL or the comment is missing.
	ErrInvalidAnnotation = zerr.New("URL and comment are required")

	// ErrURLRequired is returned when annotations are listed without a page URL.
	ErrURLRequired = zerr.New("URL parameter required")

	// ErrUnexpectedStatus is returned when the annotation endpoint answers with a non-success status.
	ErrUnexpectedStatus = zerr.New("unexpected response status")

	// ErrLoadFailed is returned when the annotations of a page could not be loaded.
	ErrLoadFailed = zerr.New("failed to load annotations")

	// ErrSaveFailed is returned when an annotation could not be saved.
	ErrSaveFailed = zerr.New("failed to save annotation")

	// ErrUnknownStorageDriver is returned when the configured storage driver is not supported.
	ErrUnknownStorageDriver = zerr.New("unknown storage driver")

	// ErrInvalidEndpoint is returned when the API endpoint is not an absolute path.
	ErrInvalidEndpoint = zerr.New("api endpoint must start with '/'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrPageFetchFailed is returned when the annotated page cannot be fetched.
	ErrPageFetchFailed = zerr.New("failed to fetch page")

	// ErrNoElementMatch is returned when a scripted click names a locator no page element resolves to.
	ErrNoElementMatch = zerr.New("no element matches locator")

	// ErrNotATerminal is returned when the interactive overlay is requested without a terminal.
	ErrNotATerminal = zerr.New("interactive mode requires a terminal")
)
