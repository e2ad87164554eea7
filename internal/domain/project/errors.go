package project

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)
