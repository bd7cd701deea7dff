// Package semver parses package versions and version matchers.
//
// A version is up to three dot-separated non-negative integers; missing
// components default to zero ("2" is 2.0.0). A matcher is one of:
//
//	^1.2.3   >= 1.2.3, < 2.0.0
//	~1.2.3   >= 1.2.3, < 1.3.0
//	1.2.3    exactly 1.2.3
//	"*"      any version (written without quotes)
//
// Matchers keep the text they were parsed from so they round-trip through
// the store state file unchanged.
package semver
