package approvals

import "errors"

var (
	ErrApprovalRepositoryRequired = errors.New("approvals: repository is required")
	ErrApprovalNotFound           = errors.New("approvals: approval not found")
	ErrSubjectRequired            = errors.New("approvals: subject type and id are required")
	ErrStatusRequired             = errors.New("approvals: status id is required")
)
