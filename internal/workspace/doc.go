// Package workspace manages the directory git sources are cloned into.
//
// Ephemeral mode creates a fresh aepsite-* directory under the system temp
// directory and removes it on Cleanup. Persistent mode uses a fixed
// directory that survives builds, so preview refreshes pull instead of
// cloning again.
package workspace
