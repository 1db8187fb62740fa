package client

//go:generate $MOCKGEN -source=transport.go -destination=mocks/transport_mock.go

import "context"

// Transport performs shaped requests.
// Invoke must not block; it reports completion exactly once, through either
// onSuccess or onFailure, possibly from another goroutine.
type Transport interface {
	// Invoke performs the request asynchronously.
	Invoke(ctx context.Context, request *Request, onSuccess SuccessFunc, onFailure FailureFunc)
}

// FileEntryFactory turns a transport file description into a file handle.
type FileEntryFactory interface {
	// NewFileEntry creates a file handle for a downloaded file.
	NewFileEntry(descriptor *FileDescriptor) *FileEntry
}

// DefaultFileEntryFactory builds plain FileEntry values.
type DefaultFileEntryFactory struct{}

// NewFileEntry creates a file handle for a downloaded file.
// The file system name comes from the descriptor's explicit name when set,
// otherwise from its storage class.
func (DefaultFileEntryFactory) NewFileEntry(descriptor *FileDescriptor) *FileEntry {
	if descriptor == nil {
		descriptor = &FileDescriptor{}
	}

	filesystem := descriptor.FilesystemName
	if filesystem == "" {
		filesystem = descriptor.Filesystem.String()
	}

	return &FileEntry{
		IsDirectory: false,
		IsFile:      true,
		Name:        descriptor.Name,
		FullPath:    descriptor.FullPath,
		Filesystem:  filesystem,
		NativeURL:   descriptor.NativeURL,
	}
}
