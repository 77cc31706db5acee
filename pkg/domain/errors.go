package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownQuestion is returned when a question id does not resolve in the graph.
var ErrUnknownQuestion = errors.New("unknown question")

// ErrInvalidAnswer is returned when an answer does not satisfy its question.
var ErrInvalidAnswer = errors.New("invalid answer")

// ErrFlowComplete is returned when answering a session that already reached the end.
var ErrFlowComplete = errors.New("flow already complete")

// ErrDuplicateQuestion is returned when a graph defines the same id twice.
var ErrDuplicateQuestion = errors.New("duplicate question id")

// ErrEmptyID is returned when a required id is empty.
var ErrEmptyID = errors.New("empty id")

// ErrNotCurrentQuestion is returned when an answer targets a question other than the one being shown.
var ErrNotCurrentQuestion = errors.New("question is not the current one")
