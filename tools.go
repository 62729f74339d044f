//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Mocks in *_mock_test.go files are generated with github.com/matryer/moq
// from the go:generate directives next to the tests that use them.
