// Package resolve decides which installed binary, or which executable path,
// serves a request.
//
// It answers two questions over an immutable manifest snapshot:
//
//   - which installed binary satisfies a project configuration entry
//     (InstalledBinaryForConfig), or a name and version selector
//     (LatestMatching, BinaryWithNameAndVersion);
//   - which executable a command name launches (CommandPath).
//
// The package never touches storage or the network. It reads the manifest
// through the Manifest interface and asks the Environment for the plugin
// cache directory and for executables on the system PATH, so tests run
// against in-memory fakes.
//
// Every failure is a *Error whose Kind is one of NotFound, VersionMismatch,
// AmbiguousOwner, StaleBinding or Defect; use errors.Is with the matching
// sentinel (ErrNotFound, ...) to branch on it. Errors from the Environment
// are returned unchanged.
package resolve
