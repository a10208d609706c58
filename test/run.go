package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

const (
	minipasCmd = "go run ./cmd/minipas --no-color run"
	runTimeout = 10 * time.Second
)

var diagnosticPatterns = []string{
	"error: lexical error",
	"error: syntax error",
	"error: semantic error",
	"error: runtime error",
}

type testResult struct {
	fileName string
	passed   bool
	output   string // failure details
	isGood   bool
}

func main() {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	fmt.Println("🔍 Running good tests:")
	goodFiles, _ := filepath.Glob(filepath.Join("tests/good", "*.pas"))
	fmt.Printf("Found %d good test files...\n", len(goodFiles))

	goodPassed, goodFailed := 0, 0
	badPassed, badFailed := 0, 0
	var failedTests []testResult

	for _, file := range goodFiles {
		res := runGoodTest(file)
		if res.passed {
			fmt.Printf("  %s %s\n", pass("✅"), res.fileName)
			goodPassed++
		} else {
			fmt.Printf("  %s %s\n", fail("❌"), res.fileName)
			goodFailed++
			failedTests = append(failedTests, res)
		}
	}

	fmt.Println("\n💥 Running bad tests:")
	badFiles, _ := filepath.Glob(filepath.Join("tests/bad", "*.pas"))
	fmt.Printf("Found %d bad test files...\n", len(badFiles))

	for _, file := range badFiles {
		res := runBadTest(file)
		if res.passed {
			fmt.Printf("  %s %s (failed as expected)\n", pass("✅"), res.fileName)
			badPassed++
		} else {
			fmt.Printf("  %s %s (unexpected result)\n", fail("❌"), res.fileName)
			badFailed++
			failedTests = append(failedTests, res)
		}
	}

	if len(failedTests) > 0 {
		fmt.Println("\n--- Detailed Failures ---")
		for _, failure := range failedTests {
			fmt.Printf("\n❌ Test: %s (%s)\n", failure.fileName, map[bool]string{true: "Good Test", false: "Bad Test"}[failure.isGood])
			fmt.Println("Reason:")
			fmt.Println(failure.output)
			fmt.Println("---")
		}
	}

	fmt.Println("\n--------------------")
	fmt.Printf("Good Tests Summary: ✅ Passed: %d | ❌ Failed: %d\n", goodPassed, goodFailed)
	fmt.Printf("Bad Tests Summary:  ✅ Passed: %d | ❌ Failed: %d\n", badPassed, badFailed)
	fmt.Println("--------------------")

	if goodFailed > 0 || badFailed > 0 {
		fmt.Println("\n🚨 Some tests failed!")
		os.Exit(1)
	}
	fmt.Println("\n🎉 All tests passed!")
}

// runGoodTest runs a program and compares its bindings with
// tests/good/expected/<name>.out.
func runGoodTest(file string) testResult {
	fileName := filepath.Base(file)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	res := testResult{fileName: fileName, isGood: true}

	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s %s", minipasCmd, file))
	stdout, stderr, err := runCommandWithTimeout(cmd, runTimeout)
	if err != nil {
		res.output = fmt.Sprintf("minipas failed: %v\nStderr:\n%s", err, stderr)
		return res
	}

	expectedPath := filepath.Join("tests/good/expected", nameWithoutExt+".out")
	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		res.output = fmt.Sprintf("Missing expected output: %s", expectedPath)
		return res
	}

	expectedNorm := bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))
	if !bytes.Equal(expectedNorm, stdout) {
		res.output = fmt.Sprintf("Output mismatch\nExpected (%s):\n%s\nActual:\n%s", expectedPath, expectedNorm, stdout)
		return res
	}

	res.passed = true
	return res
}

// runBadTest expects a non-zero exit and a rendered diagnostic on stderr.
func runBadTest(file string) testResult {
	fileName := filepath.Base(file)
	res := testResult{fileName: fileName, isGood: false}

	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s %s", minipasCmd, file))
	stdout, stderr, err := runCommandWithTimeout(cmd, runTimeout)

	hasDiagnostic := false
	for _, pattern := range diagnosticPatterns {
		if bytes.Contains(stderr, []byte(pattern)) {
			hasDiagnostic = true
			break
		}
	}

	switch {
	case err != nil && hasDiagnostic:
		res.passed = true
	case err != nil:
		res.output = fmt.Sprintf("Failed without a diagnostic.\nExit Err: %v\nStderr:\n%s", err, stderr)
	default:
		res.output = fmt.Sprintf("Expected failure but got success.\nOutput:\n%s", stdout)
	}
	return res
}

func runCommandWithTimeout(cmd *exec.Cmd, timeout time.Duration) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start command '%s': %w", cmd.String(), err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-time.After(timeout):
		if killErr := cmd.Process.Kill(); killErr != nil {
			return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("command '%s' timed out after %v and failed to kill: %w", cmd.String(), timeout, killErr)
		}
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("command '%s' timed out after %v", cmd.String(), timeout)
	case err := <-done:
		return stdout.Bytes(), stderr.Bytes(), err
	}
}
