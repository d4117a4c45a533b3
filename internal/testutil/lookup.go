package testutil

// MapLookup adapts a map to the launcher's environment lookup signature.
//
// Tests build launch environments from literal maps instead of mutating the
// real process environment.
func MapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// ReadyEnv returns a minimal ready launch environment for tests.
func ReadyEnv() map[string]string {
	return map[string]string{
		"SFD_ENV_READY":   "1",
		"SFD_PYTHON":      "python3",
		"SFD_SCRIPT_ROOT": "/opt/sfd",
		"SFD_DATA_ROOT":   "/data/sfd",
		"SFD_ARTIFACT":    "dnabert-pretrain:latest",
	}
}
