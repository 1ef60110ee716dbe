// Package platform provides cross-platform filesystem operations used when
// rewriting project files: in-place replacement that keeps the original
// permissions and follows symlinks, backup copies, and permission management.
// On Windows, Unix permission bits are ignored.
package platform
