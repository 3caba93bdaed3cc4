package actions

// ShowVersion prints the build version.
func ShowVersion(deps Deps) Command {
	return func(*Context) (int, error) {
		_, _ = deps.Printf("brig version %v\n", deps.Version())
		return 1, nil
	}
}
