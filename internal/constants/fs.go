package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	// Owner: read and write;
	// Group: read;
	// Others: read.
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	// Owner: read, write, and execute;
	// Group: read and execute;
	// Others: read and execute.
	DefaultFolderPermissions os.FileMode = 0o755

	// PrivateFilePermissions is used for files holding credentials such as cookies: (rw-------).
	PrivateFilePermissions os.FileMode = 0o600
)

// Certificate file extension constants.
const (
	ExtensionCER = ".cer"
	ExtensionCRT = ".crt"
	ExtensionPEM = ".pem"
	ExtensionDER = ".der"
)
