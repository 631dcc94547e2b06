package filter

// ignorer reports whether a cwd-relative path is excluded by .gitignore rules.
type ignorer interface {
	ShouldIgnore(rel string, isDir bool) bool
}
