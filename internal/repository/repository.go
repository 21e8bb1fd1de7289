package repository

import "errors"

// Package repository contains data access layer abstractions. Implementations
// live in subpackages (e.g., mongodb) inside this directory.

// Sentinel errors implementations translate driver-level failures into, so
// services never import driver packages to classify an error.
var (
	// ErrNotFound means the query matched no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate document")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
