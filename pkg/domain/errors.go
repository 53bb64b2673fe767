package domain

import "errors"

// ErrPresetNotFound is returned when an expression id is not in the registry.
// Unknown ids are recoverable: the engine logs and keeps its current state.
var ErrPresetNotFound = errors.New("expression preset not found")

// ErrInvalidPreset is returned when a preset fails structural validation.
var ErrInvalidPreset = errors.New("invalid expression preset")

// ErrEngineClosed is returned by control calls after the engine is disposed.
var ErrEngineClosed = errors.New("engine closed")

// ErrNoSavedState is returned when a state store holds no record for the key.
var ErrNoSavedState = errors.New("no saved expression state")
