package main

import "regexp"

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}|\$(\w+)`)

// expandEnv replaces ${NAME} and $NAME with the value of NAME in env, or
// with the empty string when NAME is unset. Substituted text is not
// expanded again.
func expandEnv(text string, env map[string]string) string {
	return envVarPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name := groups[1]
		if name == "" {
			name = groups[2]
		}
		return env[name]
	})
}
