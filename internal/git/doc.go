// Package git fetches remote corpus sources with go-git: a shallow
// single-branch clone on first use, then fetch and hard reset on refresh.
package git
