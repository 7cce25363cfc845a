package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotAssignee     = errors.New("only the assignee or a manager may update the status")
	ErrUnknownStatus   = errors.New("unknown status value")
)
