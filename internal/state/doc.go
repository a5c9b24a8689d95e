// Package state persists build state across runs in SQLite: the
// fingerprint of every output written and a record of each build.
//
// The output writer consults it to report files whose content did not change
// since the previous build.
package state
