package probe

import "os/exec"

// Have reports whether an executable by that name is resolvable in the
// current environment. Results are not cached: availability is re-checked
// on every call, which is acceptable for a short-lived run.
func Have(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}
