package main

import (
	"os"
	"testing"
)

func TestMain_Version(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CCREFACTOR_CONFIG", "")
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	// succeeds without reaching os.Exit
	os.Args = []string{"ccrefactor", "version", "--short"}
	main()
}
