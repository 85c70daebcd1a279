package pipeline

import (
	"os"
	"testing"
)

// chdir changes into dir for the duration of the test and restores the
// previous working directory on cleanup (stand-in for t.Chdir, Go <1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
