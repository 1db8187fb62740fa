package client

import (
	"net/http"

	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/serializer"
)

// Action names the operation a Transport is asked to perform.
type Action string

const (
	// ActionPost sends a body-bearing POST request.
	ActionPost Action = "post"
	// ActionGet sends a GET request.
	ActionGet Action = "get"
	// ActionHead sends a HEAD request.
	ActionHead Action = "head"
	// ActionUploadFile sends a multipart POST request with a file part.
	ActionUploadFile Action = "uploadFile"
	// ActionDownloadFile stores the body of a GET request in a file.
	ActionDownloadFile Action = "downloadFile"
	// ActionEnableSSLPinning toggles certificate pinning.
	ActionEnableSSLPinning Action = "enableSSLPinning"
	// ActionAcceptAllCerts toggles acceptance of any server certificate.
	ActionAcceptAllCerts Action = "acceptAllCerts"
	// ActionValidateDomainName toggles host name verification.
	ActionValidateDomainName Action = "validateDomainName"
)

// Method returns the HTTP method used for the action, or an empty string
// for actions that only change transport settings.
func (a Action) Method() string {
	switch a {
	case ActionPost, ActionUploadFile:
		return http.MethodPost
	case ActionGet, ActionDownloadFile:
		return http.MethodGet
	case ActionHead:
		return http.MethodHead
	default:
		return ""
	}
}

// IsToggle reports whether the action changes transport settings instead of sending a request.
func (a Action) IsToggle() bool {
	return a == ActionEnableSSLPinning || a == ActionAcceptAllCerts || a == ActionValidateDomainName
}

// Request is a fully shaped request handed to a Transport.
// A Request must not be modified once submitted.
type Request struct {
	// Action is the operation to perform.
	Action Action
	// URL is the target URL as given by the caller.
	URL string
	// Data is the POST body before encoding.
	Data map[string]any
	// Params are query parameters, or form fields for uploads.
	Params map[string]any
	// Headers are the final request headers.
	Headers header.Map
	// Serializer is the body encoding, set for POST requests only.
	Serializer serializer.Kind
	// FilePath is the upload source or the download destination.
	FilePath string
	// Name is the multipart field name of an uploaded file.
	Name string
	// Flag is the value of a settings toggle.
	Flag bool
}

// Response is the outcome of a successful request.
type Response struct {
	// Status is the HTTP status code.
	Status int
	// URL is the final URL after redirects.
	URL string
	// Headers are the response headers.
	Headers header.Map
	// Data is the response body. It is empty for HEAD requests and downloads.
	Data []byte
	// File describes the stored file of a download.
	File *FileDescriptor
}

// FileSystemKind identifies the storage class reported for a downloaded file.
type FileSystemKind int

const (
	// TemporaryFileSystem is storage that may be purged by the platform.
	TemporaryFileSystem FileSystemKind = iota
	// PersistentFileSystem is storage kept until removed explicitly.
	PersistentFileSystem
)

// String returns the file system name used in FileEntry values.
func (k FileSystemKind) String() string {
	if k == PersistentFileSystem {
		return "persistent"
	}

	return "temporary"
}

// FileDescriptor is the raw file description reported by a Transport after a download.
type FileDescriptor struct {
	// Name is the base name of the file.
	Name string
	// FullPath is the path of the file inside its file system.
	FullPath string
	// FilesystemName is an explicit file system name; it takes priority over Filesystem.
	FilesystemName string
	// Filesystem is the storage class used when FilesystemName is empty.
	Filesystem FileSystemKind
	// NativeURL is the platform URL of the file.
	NativeURL string
}

// FileEntry is the file handle passed to download callbacks.
type FileEntry struct {
	// IsDirectory is always false for downloads.
	IsDirectory bool
	// IsFile is always true for downloads.
	IsFile bool
	// Name is the base name of the file.
	Name string
	// FullPath is the path of the file inside its file system.
	FullPath string
	// Filesystem is the name of the file system holding the file.
	Filesystem string
	// NativeURL is the platform URL of the file.
	NativeURL string
}

// SuccessFunc receives a successful response.
type SuccessFunc func(response *Response)

// FailureFunc receives a failure reported by the Transport.
type FailureFunc func(err error)

// FileFunc receives the file handle of a completed download.
type FileFunc func(entry *FileEntry)
