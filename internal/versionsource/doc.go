// Package versionsource decides the version string of a distribution at
// build time.
//
// A VersionSource checks a fixed chain of pretend-version environment
// variables first and only falls back to inspecting the repository through
// a Resolver when none of them is set. It also translates the host's
// configuration table into the option set understood by the resolver.
package versionsource
